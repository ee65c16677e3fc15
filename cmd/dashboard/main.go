package main

import (
	"context"
	"log"

	"mycloud/internal/pkg"

	"github.com/sirupsen/logrus"
)

// @title MyCloud Dashboard API
// @version 1.0
// @description Личный кабинет хостинг-провайдера: каталог, конфигуратор, корзина, заказы, профиль и поддержка поверх REST API биллинга

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log.Println("App start")

	app, err := pkg.NewApp(context.Background())
	if err != nil {
		logrus.Fatal(err)
	}
	app.RunApp()

	log.Println("App terminated")
}
