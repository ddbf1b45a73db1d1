package main

import "github.com/honoursbhaduria/Parkezy-2.0-sub001/internal/app"

// @title           ParkEzy API
// @version         1.0
// @description     Parking marketplace backend: spots, bookings and access-code entry.
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	app.Run()
}
