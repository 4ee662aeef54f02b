package environment

// ClassifyAQI maps a PM2.5 concentration to the six-level AQI scale.
func ClassifyAQI(pm25 float64) AQI {
	switch {
	case pm25 <= 12:
		return AQI{Label: "Good", Level: 1, ColorTag: "green"}
	case pm25 <= 35.4:
		return AQI{Label: "Moderate", Level: 2, ColorTag: "yellow"}
	case pm25 <= 55.4:
		return AQI{Label: "Unhealthy for Sensitive Groups", Level: 3, ColorTag: "orange"}
	case pm25 <= 150.4:
		return AQI{Label: "Unhealthy", Level: 4, ColorTag: "red"}
	case pm25 <= 250.4:
		return AQI{Label: "Very Unhealthy", Level: 5, ColorTag: "purple"}
	default:
		return AQI{Label: "Hazardous", Level: 6, ColorTag: "maroon"}
	}
}
