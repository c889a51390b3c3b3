package main

import "gallery-backend/internal/app"

func main() {
	app.Run()
}
