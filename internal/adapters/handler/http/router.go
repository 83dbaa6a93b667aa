package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewHandler(voteHandler *VoteHandler, groupHandler *GroupHandler, resultHandler *ResultHandler, adminHandler *AdminHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("ok"))
		})

		r.Route("/groups", func(r chi.Router) {
			r.Get("/", groupHandler.ListGroups)
			r.Get("/{id}", groupHandler.GetGroup)
		})

		r.Route("/votes", func(r chi.Router) {
			r.Post("/", voteHandler.SubmitVote)
			r.Get("/status/{groupId}", voteHandler.GetVoteStatus)
			r.Get("/history", voteHandler.GetVoteHistory)
		})

		r.Route("/results", func(r chi.Router) {
			r.Get("/", resultHandler.ListResults)
			r.Get("/{groupId}", resultHandler.GetResult)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Route("/groups", func(r chi.Router) {
				r.Post("/", adminHandler.CreateGroup)
				r.Post("/bulk", adminHandler.BulkCreateGroups)
				r.Put("/reorder", adminHandler.ReorderGroups)
				r.Put("/{id}", adminHandler.UpdateGroup)
				r.Delete("/{id}", adminHandler.DeleteGroup)
			})

			r.Route("/votes", func(r chi.Router) {
				r.Get("/", adminHandler.ListVotes)
				r.Get("/export", adminHandler.ExportVotes)
				r.Get("/group/{groupId}", adminHandler.ListVotesByGroup)
				r.Delete("/{id}", adminHandler.DeleteVote)
				r.Delete("/", adminHandler.ResetVotes)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", adminHandler.GetSettings)
				r.Patch("/", adminHandler.UpdateSettings)
			})

			r.Route("/aggregation", func(r chi.Router) {
				r.Post("/run", adminHandler.RunAggregation)
				r.Get("/status", adminHandler.AggregationStatus)
			})

			r.Route("/scheduler", func(r chi.Router) {
				r.Get("/status", adminHandler.SchedulerStatus)
				r.Post("/start", adminHandler.StartScheduler)
				r.Post("/stop", adminHandler.StopScheduler)
				r.Post("/restart", adminHandler.RestartScheduler)
			})
		})
	})

	return r
}
