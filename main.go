package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/jansuraksha/jan-suraksha-api/api/handlers"
	"github.com/jansuraksha/jan-suraksha-api/api/scheduler"
	"github.com/jansuraksha/jan-suraksha-api/config"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()

	err := a.Initialize() //initialize database and router
	if err != nil {
		log.Fatal(err)
	}

	s := scheduler.NewScheduler(a.ComplaintDB(), &a.Config, handlers.SendGridSender{
		FromName:    a.Config.EmailFromName,
		FromAddress: a.Config.EmailFromAddress,
	})
	s.Start()
	defer s.Stop()

	port := os.Getenv("PORT")
	baseURL := os.Getenv("BASE_URL")
	zap.S().Infow("jan-suraksha-api is up and running",
		"port", port,
		"url", baseURL,
	)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", port), a.Router))
}
