package router

import (
	"net/http"

	"github.com/senyabanana/talentlink-service/internal/handlers"
	"github.com/senyabanana/talentlink-service/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Handlers - набор обработчиков API.
type Handlers struct {
	User         *handlers.UserHandler
	Project      *handlers.ProjectHandler
	Proposal     *handlers.ProposalHandler
	Contract     *handlers.ContractHandler
	Message      *handlers.MessageHandler
	Notification *handlers.NotificationHandler
}

func InitRoutes(h Handlers, jwtSecret string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(chimw.Recoverer)

	r.Route("/api", func(api chi.Router) {
		api.Get("/ping", handlers.PingHandler)
		api.Post("/register", h.User.Register)

		api.Group(func(auth chi.Router) {
			auth.Use(middleware.Auth(jwtSecret))

			auth.Get("/client-profile", h.User.GetClientProfile)
			auth.Put("/client-profile", h.User.UpdateClientProfile)
			auth.Get("/freelancer-profile", h.User.GetFreelancerProfile)
			auth.Put("/freelancer-profile", h.User.UpdateFreelancerProfile)
			auth.Get("/profiles", h.User.ListFreelancers)

			auth.Post("/projects", h.Project.CreateProject)
			auth.Get("/projects", h.Project.GetProjects)
			auth.Get("/projects/{projectId}", h.Project.GetProject)
			auth.Put("/projects/{projectId}", h.Project.UpdateProject)
			auth.Delete("/projects/{projectId}", h.Project.DeleteProject)

			auth.Post("/proposals", h.Proposal.SubmitProposal)
			auth.Get("/proposals", h.Proposal.GetProposals)
			auth.Get("/proposals/{proposalId}", h.Proposal.GetProposal)
			auth.Post("/proposals/{proposalId}/accept", h.Proposal.AcceptProposal)
			auth.Post("/proposals/{proposalId}/reject", h.Proposal.RejectProposal)

			auth.Get("/contracts", h.Contract.GetContracts)
			auth.Get("/contracts/{contractId}", h.Contract.GetContract)
			auth.Put("/contracts/{contractId}/mark_completed", h.Contract.MarkCompleted)
			auth.Post("/contracts/{contractId}/review", h.Contract.ReviewContract)

			auth.Post("/messages", h.Message.SendMessage)
			auth.Get("/messages", h.Message.GetMessages)

			auth.Get("/notifications", h.Notification.GetNotifications)
			auth.Get("/notifications/unread", h.Notification.GetUnread)
			auth.Get("/notifications/read", h.Notification.GetRead)
			auth.Post("/notifications/mark_all_as_read", h.Notification.MarkAllAsRead)
			auth.Post("/notifications/{notificationId}/mark_as_read", h.Notification.MarkAsRead)
		})
	})

	return r
}
