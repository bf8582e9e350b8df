package models

// Response is an upstream JSON body decoded without reshaping. Its schema is
// owned by OpenWeatherMap.
type Response map[string]any
