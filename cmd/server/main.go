package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"familywallet/internal/config"
	"familywallet/internal/database"
	"familywallet/internal/handlers"
	"familywallet/internal/insights"
	"familywallet/internal/repository"
	"familywallet/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close()

	missionRepo := repository.NewMissionRepository()
	prizeRepo := repository.NewPrizeRepository()
	activityRepo := repository.NewActivityRepository()
	childRepo := repository.NewChildRepository(missionRepo, prizeRepo, activityRepo)
	settingsRepo := repository.NewSettingsRepository(db)
	inviteRepo := repository.NewInviteRepository()

	var generator service.Generator
	if cfg.GeminiAPIKey != "" {
		client, err := insights.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Printf("insights disabled: %v", err)
		} else {
			generator = client
		}
	} else {
		log.Println("insights disabled: no Gemini API key configured")
	}

	emailService, err := service.NewEmailService(cfg)
	if err != nil {
		log.Fatalf("failed to initialize email service: %v", err)
	}

	rosterService := service.NewRosterService(db, childRepo, settingsRepo)
	missionService := service.NewMissionService(db, childRepo)
	shopService := service.NewShopService(db, childRepo, prizeRepo)
	insightService := service.NewInsightService(generator)
	backupService := service.NewBackupService(db, childRepo)
	inviteService := service.NewInviteService(db, inviteRepo, emailService)

	childHandler := handlers.NewChildHandler(rosterService)
	missionHandler := handlers.NewMissionHandler(missionService)
	shopHandler := handlers.NewShopHandler(shopService)
	insightHandler := handlers.NewInsightHandler(rosterService, insightService)
	backupHandler := handlers.NewBackupHandler(backupService)
	inviteHandler := handlers.NewInviteHandler(inviteService)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/children", childHandler.ListChildren)
	mux.HandleFunc("POST /api/children", childHandler.CreateChild)
	mux.HandleFunc("GET /api/children/selected", childHandler.SelectedChild)
	mux.HandleFunc("GET /api/children/{id}", childHandler.GetChild)
	mux.HandleFunc("PUT /api/children/{id}", childHandler.UpdateChild)
	mux.HandleFunc("DELETE /api/children/{id}", childHandler.DeleteChild)
	mux.HandleFunc("POST /api/children/{id}/select", childHandler.SelectChild)
	mux.HandleFunc("PUT /api/children/{id}/dream", childHandler.UpdateDream)

	mux.HandleFunc("POST /api/missions", missionHandler.CreateMission)
	mux.HandleFunc("GET /api/children/{id}/missions", missionHandler.ListForReview)
	mux.HandleFunc("POST /api/children/{id}/missions/{mid}/submit", missionHandler.SubmitMission)
	mux.HandleFunc("POST /api/children/{id}/missions/{mid}/confirm", missionHandler.ConfirmMission)
	mux.HandleFunc("POST /api/children/{id}/missions/{mid}/reject", missionHandler.RejectMission)
	mux.HandleFunc("DELETE /api/children/{id}/missions/{mid}", missionHandler.DeleteMission)

	mux.HandleFunc("GET /api/prizes", shopHandler.Catalog)
	mux.HandleFunc("POST /api/prizes", shopHandler.CreatePrize)
	mux.HandleFunc("DELETE /api/prizes/{id}", shopHandler.DeletePrize)
	mux.HandleFunc("POST /api/children/{id}/prizes/{pid}/award", shopHandler.AwardPrize)
	mux.HandleFunc("POST /api/children/{id}/prizes/{pid}/issue", shopHandler.IssuePrize)

	mux.HandleFunc("GET /api/children/{id}/insight", insightHandler.ChildInsight)
	mux.HandleFunc("POST /api/ai/ideas", insightHandler.Ideas)
	mux.HandleFunc("POST /api/children/{id}/dream/image", insightHandler.EditDreamImage)

	mux.HandleFunc("GET /api/backup/export", backupHandler.Export)
	mux.HandleFunc("POST /api/backup/import", backupHandler.Import)

	mux.HandleFunc("GET /api/invites", inviteHandler.List)
	mux.HandleFunc("POST /api/invites", inviteHandler.Create)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      handlers.Logging(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("server listening on :%s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
