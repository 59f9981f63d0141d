package dto

type CityInfo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type CitiesResponse struct {
	Success bool                `json:"success"`
	Count   int                 `json:"count"`
	Cities  []string            `json:"cities"`
	Details map[string]CityInfo `json:"details"`
}
