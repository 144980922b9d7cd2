package router

import (
	"event_manager/handler"
	"event_manager/middleware"
	"event_manager/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)

	account := v1.Group("/account", logger.New())
	account.Get("/me", middleware.Protected(), handler.Me)
	account.Post("/", middleware.Protected(), validate.CreateAccount(), handler.CreateAccount)

	event := v1.Group("/events", logger.New())
	event.Get("/", handler.GetEvents)
	event.Get("/detail/:slug", handler.GetEventDetail)
	event.Post("/", middleware.Protected(), validate.CreateEvent(), handler.CreateEvent)
	event.Put("/:eventId", middleware.Protected(), validate.GetById("eventId"), validate.UpdateEvent(), handler.EditEvent)
	event.Patch("/:eventId/cancel", middleware.Protected(), validate.GetById("eventId"), handler.CancelEvent)
	event.Delete("/", middleware.Protected(), validate.Delete(), handler.DeleteEvent)
	event.Post("/:eventId/banner", middleware.Protected(), validate.GetById("eventId"), handler.UploadEventBanner)

	event.Get("/:eventId/zones", validate.GetById("eventId"), handler.GetZonesByEvent)
	event.Post("/:eventId/zones", middleware.Protected(), validate.GetById("eventId"), validate.CreateZone(), handler.CreateZone)
	event.Post("/:eventId/seats", middleware.Protected(), validate.GetById("eventId"), validate.CreateSeatLayout(), handler.CreateSeatLayout)
	event.Get("/:eventId/seats", validate.GetById("eventId"), handler.GetSeatMap)
	event.Get("/:eventId/seats/live", middleware.OptionalJWT(), websocket.New(handler.SeatWebsocket))

	event.Post("/:eventId/purchase", validate.GetById("eventId"), validate.Purchase(), handler.PurchaseTickets)

	ticket := v1.Group("/tickets", logger.New())
	ticket.Get("/", middleware.Protected(), handler.GetTickets)
	ticket.Post("/transfer", validate.Transfer(), handler.TransferTicket)
	ticket.Get("/:code", handler.GetTicketByCode)
	ticket.Patch("/:code/check-in", middleware.Protected(), handler.CheckInTicket)
	ticket.Patch("/:code/cancel", middleware.Protected(), handler.CancelTicket)

	purchase := v1.Group("/purchases", logger.New())
	purchase.Get("/:purchaseCode", handler.GetPurchaseByCode)

	v1.Post("/cloudinary-signature", middleware.Protected(), handler.GenerateSignature)
}
