package handler

import "cleanhome/internal/address/models"

type optionsResponse struct {
	Items []models.Option `json:"items"`
}

type formatResponse struct {
	Address  string `json:"address"`
	Complete bool   `json:"complete"`
}
