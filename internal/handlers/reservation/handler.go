package reservation

import (
	"context"
	"fmt"

	"kampus/infras/otel"
	identityModel "kampus/internal/domains/identity/model"
	"kampus/internal/domains/reservation/model"
	"kampus/internal/domains/reservation/model/dto"
	"kampus/internal/domains/reservation/service"
	"kampus/internal/events"
	"kampus/shared/constant"
	"kampus/shared/failure"
	"kampus/shared/timezone"
	"kampus/transport/cli/command"
	"kampus/transport/cli/middleware"
	"kampus/transport/cli/response"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Submitter submits a reservation after resolving the facility name.
type Submitter interface {
	SubmitReservation(ctx context.Context, req dto.SubmitReservationRequest, onSuccess ...func(model.Reservation)) (model.Reservation, error)
}

type Handler struct {
	service   service.Reservation
	submitter Submitter
	events    events.Publisher
	auth      middleware.AuthRole
	otel      otel.Otel
}

func New(service service.Reservation, submitter Submitter, publisher events.Publisher, auth middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:   service,
		submitter: submitter,
		events:    publisher,
		auth:      auth,
		otel:      otel,
	}
}

func (handler *Handler) Router(root *cobra.Command) {
	group := command.Group("reservation", "Request facilities and decide requests")

	submit := &cobra.Command{Use: "submit", Short: "Request a facility", Args: command.NoArgs}
	submit.Flags().String("facility", constant.Empty, "facility id")
	submit.Flags().String("facility-name", constant.Empty, "facility name, looked up when empty")
	submit.Flags().String("date", constant.Empty, "YYYY-MM-DD")
	submit.Flags().String("start", constant.Empty, "HH:MM")
	submit.Flags().String("end", constant.Empty, "HH:MM")
	submit.Flags().String("purpose", constant.Empty, "why the facility is needed")

	mine := &cobra.Command{Use: "mine", Short: "Your reservations", Args: command.NoArgs}
	mine.Flags().String("status", constant.Empty, "pending, approved or rejected")

	get := &cobra.Command{Use: "get <id>", Short: "Show one of your reservations", Args: command.ExactID}

	list := &cobra.Command{Use: "list", Short: "All reservations (admin)", Args: command.NoArgs}
	list.Flags().String("status", constant.Empty, "pending, approved or rejected")
	list.Flags().String("facility", constant.Empty, "facility id")
	list.Flags().String("user", constant.Empty, "user id")

	approve := &cobra.Command{Use: "approve <id>", Short: "Approve a reservation (admin)", Args: command.ExactID}
	approve.Flags().String("note", constant.Empty, "note shown to the requester")

	reject := &cobra.Command{Use: "reject <id>", Short: "Reject a reservation (admin)", Args: command.ExactID}
	reject.Flags().String("note", constant.Empty, "note shown to the requester")

	group.AddCommand(
		command.Handle(submit, handler.SubmitReservation, handler.auth.Auth),
		command.Handle(mine, handler.GetMyReservations, handler.auth.Auth),
		command.Handle(get, handler.GetReservationByID, handler.auth.Auth),
		command.Handle(list, handler.GetReservations, handler.auth.Admin),
		command.Handle(approve, handler.decide(model.StatusApproved), handler.auth.Admin),
		command.Handle(reject, handler.decide(model.StatusRejected), handler.auth.Admin),
	)

	root.AddCommand(group)
}

func (handler *Handler) SubmitReservation(cmd *cobra.Command, _ []string) error {
	ctx, scope := handler.otel.NewScope(cmd.Context(), constant.OtelCommandScopeName, constant.OtelCommandScopeName+".SubmitReservation")
	defer scope.End()

	identity, _ := identityModel.FromContext(ctx)
	flags := cmd.Flags()

	var body dto.SubmitReservationRequest

	body.FacilityID, _ = flags.GetString("facility")
	body.FacilityName, _ = flags.GetString("facility-name")
	body.StartTime, _ = flags.GetString("start")
	body.EndTime, _ = flags.GetString("end")
	body.Purpose, _ = flags.GetString("purpose")

	if date, _ := flags.GetString("date"); date != constant.Empty {
		parsed, err := timezone.ParseDate(date)
		if err != nil {
			err = failure.BadRequestFromString(fmt.Sprintf("date %q is not YYYY-MM-DD", date))
			scope.TraceError(err)

			return err //nolint:wrapcheck
		}

		body.Date = parsed
	}

	body.UserID = identity.UserID

	reservation, err := handler.submitter.SubmitReservation(ctx, body, func(submitted model.Reservation) {
		scope.AddEvent("Reservation " + submitted.ID + " submitted by user " + submitted.UserID)
		handler.events.Publish(ctx, events.New(events.ReservationSubmitted, submitted.ID, submitted))
	})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to submit reservation")

		return err //nolint:wrapcheck
	}

	response.WithJSON(cmd.OutOrStdout(), reservation)

	return nil
}

func (handler *Handler) GetMyReservations(cmd *cobra.Command, _ []string) error {
	ctx, scope := handler.otel.NewScope(cmd.Context(), constant.OtelCommandScopeName, constant.OtelCommandScopeName+".GetMyReservations")
	defer scope.End()

	identity, _ := identityModel.FromContext(ctx)

	status, err := statusFlag(cmd)
	if err != nil {
		scope.TraceError(err)

		return err
	}

	reservations := filter(handler.service.ByUser(ctx, identity.UserID), func(r model.Reservation) bool {
		return status == constant.Empty || r.Status == status
	})

	response.WithJSON(cmd.OutOrStdout(), reservations)

	return nil
}

// GetReservationByID shows a reservation to its owner or to an administrator.
func (handler *Handler) GetReservationByID(cmd *cobra.Command, args []string) error {
	ctx, scope := handler.otel.NewScope(cmd.Context(), constant.OtelCommandScopeName, constant.OtelCommandScopeName+".GetReservationByID")
	defer scope.End()

	identity, _ := identityModel.FromContext(ctx)

	reservation, err := handler.service.Get(ctx, args[0])
	if err != nil {
		scope.TraceError(err)

		return err //nolint:wrapcheck
	}

	if !identity.CanViewReservationsOf(reservation.UserID) {
		scope.TraceError(failure.ForbiddenError)

		return failure.ForbiddenError
	}

	response.WithJSON(cmd.OutOrStdout(), reservation)

	return nil
}

// GetReservations lists every reservation. Filters combine.
func (handler *Handler) GetReservations(cmd *cobra.Command, _ []string) error {
	ctx, scope := handler.otel.NewScope(cmd.Context(), constant.OtelCommandScopeName, constant.OtelCommandScopeName+".GetReservations")
	defer scope.End()

	status, err := statusFlag(cmd)
	if err != nil {
		scope.TraceError(err)

		return err
	}

	facilityID, _ := cmd.Flags().GetString("facility")
	userID, _ := cmd.Flags().GetString("user")

	var reservations []model.Reservation

	switch {
	case facilityID != constant.Empty:
		reservations = handler.service.ByFacility(ctx, facilityID)
	case status != constant.Empty:
		reservations = handler.service.ByStatus(ctx, status)
	default:
		reservations = handler.service.GetAll(ctx)
	}

	reservations = filter(reservations, func(r model.Reservation) bool {
		return (status == constant.Empty || r.Status == status) &&
			(userID == constant.Empty || r.UserID == userID)
	})

	response.WithJSON(cmd.OutOrStdout(), reservations)

	return nil
}

func (handler *Handler) decide(status model.Status) command.HandlerFunc {
	return func(cmd *cobra.Command, args []string) error {
		ctx, scope := handler.otel.NewScope(cmd.Context(), constant.OtelCommandScopeName, constant.OtelCommandScopeName+".TransitionStatus")
		defer scope.End()

		id := args[0]
		note, _ := cmd.Flags().GetString("note")

		reservation, err := handler.service.TransitionStatus(ctx, id, status, note, func(decided model.Reservation) {
			scope.AddEvent("Reservation " + decided.ID + " " + string(decided.Status))
			handler.events.Publish(ctx, events.New(decisionEvent(decided.Status), decided.ID, decided))
		})
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("id", id).Str("status", string(status)).Msg("failed to transition reservation")

			return err //nolint:wrapcheck
		}

		response.WithJSON(cmd.OutOrStdout(), reservation)

		return nil
	}
}

// statusFlag reads --status. Empty means no filter; anything else must be a known status.
func statusFlag(cmd *cobra.Command) (model.Status, error) {
	value, _ := cmd.Flags().GetString("status")

	status := model.Status(value)
	if status != constant.Empty && !status.Valid() {
		return constant.Empty, failure.BadRequestFromString(fmt.Sprintf("status %q must be one of pending approved rejected", value)) //nolint:wrapcheck
	}

	return status, nil
}

func decisionEvent(status model.Status) string {
	if status == model.StatusApproved {
		return events.ReservationApproved
	}

	return events.ReservationRejected
}

func filter(reservations []model.Reservation, keep func(model.Reservation) bool) []model.Reservation {
	kept := make([]model.Reservation, 0, len(reservations))

	for _, reservation := range reservations {
		if keep(reservation) {
			kept = append(kept, reservation)
		}
	}

	return kept
}
