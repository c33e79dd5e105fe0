package facility

import (
	"fmt"

	"kampus/infras/otel"
	"kampus/internal/domains/facility/model"
	"kampus/internal/domains/facility/model/dto"
	"kampus/internal/domains/facility/service"
	"kampus/internal/events"
	"kampus/shared/constant"
	"kampus/shared/failure"
	"kampus/transport/cli/command"
	"kampus/transport/cli/middleware"
	"kampus/transport/cli/response"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type Handler struct {
	service service.Facility
	events  events.Publisher
	auth    middleware.AuthRole
	otel    otel.Otel
}

func New(service service.Facility, publisher events.Publisher, auth middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service: service,
		events:  publisher,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(root *cobra.Command) {
	group := command.Group("facility", "Browse and manage facilities")

	list := &cobra.Command{Use: "list", Short: "List facilities", Args: command.NoArgs}
	list.Flags().String("status", constant.Empty, "only facilities with this status")

	get := &cobra.Command{Use: "get <id>", Short: "Show one facility", Args: command.ExactID}

	create := &cobra.Command{Use: "create", Short: "Add a facility (admin)", Args: command.NoArgs}
	facilityFlags(create.Flags())

	update := &cobra.Command{Use: "update <id>", Short: "Edit a facility; only given flags change (admin)", Args: command.ExactID}
	facilityFlags(update.Flags())

	remove := &cobra.Command{Use: "delete <id>", Short: "Remove a facility (admin)", Args: command.ExactID}

	group.AddCommand(
		command.Handle(list, handler.GetFacilities),
		command.Handle(get, handler.GetFacilityByID),
		command.Handle(create, handler.CreateFacility, handler.auth.Admin),
		command.Handle(update, handler.UpdateFacility, handler.auth.Admin),
		command.Handle(remove, handler.DeleteFacility, handler.auth.Admin),
	)

	root.AddCommand(group)
}

func facilityFlags(flags *pflag.FlagSet) {
	flags.String("name", constant.Empty, "facility name")
	flags.Int("capacity", 0, "number of people")
	flags.String("location", constant.Empty, "where the facility is")
	flags.String("status", constant.Empty, "available, maintenance or unavailable")
	flags.String("description", constant.Empty, "free text")
	flags.String("image", constant.Empty, "image reference")
	flags.StringArray("feature", nil, "feature, repeatable; replaces the list on update")
}

// GetFacilities lists the catalog in insertion order, optionally narrowed to one status.
func (handler *Handler) GetFacilities(cmd *cobra.Command, _ []string) error {
	ctx, scope := handler.otel.NewScope(cmd.Context(), constant.OtelCommandScopeName, constant.OtelCommandScopeName+".GetFacilities")
	defer scope.End()

	status, _ := cmd.Flags().GetString("status")
	if status != constant.Empty && !model.Status(status).Valid() {
		err := failure.BadRequestFromString(fmt.Sprintf("status %q must be one of available maintenance unavailable", status))
		scope.TraceError(err)

		return err //nolint:wrapcheck
	}

	facilities := handler.service.GetAll(ctx)

	if status != constant.Empty {
		filtered := make([]model.Facility, 0, len(facilities))

		for _, facility := range facilities {
			if facility.Status == model.Status(status) {
				filtered = append(filtered, facility)
			}
		}

		facilities = filtered
	}

	response.WithJSON(cmd.OutOrStdout(), facilities)

	return nil
}

func (handler *Handler) GetFacilityByID(cmd *cobra.Command, args []string) error {
	ctx, scope := handler.otel.NewScope(cmd.Context(), constant.OtelCommandScopeName, constant.OtelCommandScopeName+".GetFacilityByID")
	defer scope.End()

	id := args[0]

	facility, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get facility")

		return err //nolint:wrapcheck
	}

	response.WithJSON(cmd.OutOrStdout(), facility)

	return nil
}

func (handler *Handler) CreateFacility(cmd *cobra.Command, _ []string) error {
	ctx, scope := handler.otel.NewScope(cmd.Context(), constant.OtelCommandScopeName, constant.OtelCommandScopeName+".CreateFacility")
	defer scope.End()

	flags := cmd.Flags()

	var body dto.CreateFacilityRequest

	body.Name, _ = flags.GetString("name")
	body.Capacity, _ = flags.GetInt("capacity")
	body.Location, _ = flags.GetString("location")
	body.Description, _ = flags.GetString("description")
	body.Image, _ = flags.GetString("image")
	body.Features, _ = flags.GetStringArray("feature")

	status, _ := flags.GetString("status")
	body.Status = model.Status(status)

	facility, err := handler.service.Create(ctx, body, func(created model.Facility) {
		scope.AddEvent("Facility " + created.ID + " created")
		handler.events.Publish(ctx, events.New(events.FacilityCreated, created.ID, created))
	})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create facility")

		return err //nolint:wrapcheck
	}

	response.WithJSON(cmd.OutOrStdout(), facility)

	return nil
}

// UpdateFacility changes only the fields whose flags were given.
func (handler *Handler) UpdateFacility(cmd *cobra.Command, args []string) error {
	ctx, scope := handler.otel.NewScope(cmd.Context(), constant.OtelCommandScopeName, constant.OtelCommandScopeName+".UpdateFacility")
	defer scope.End()

	id := args[0]
	flags := cmd.Flags()

	var body dto.UpdateFacilityRequest

	if flags.Changed("name") {
		name, _ := flags.GetString("name")
		body.Name = &name
	}

	if flags.Changed("capacity") {
		capacity, _ := flags.GetInt("capacity")
		body.Capacity = &capacity
	}

	if flags.Changed("location") {
		location, _ := flags.GetString("location")
		body.Location = &location
	}

	if flags.Changed("status") {
		status, _ := flags.GetString("status")
		s := model.Status(status)
		body.Status = &s
	}

	if flags.Changed("description") {
		description, _ := flags.GetString("description")
		body.Description = &description
	}

	if flags.Changed("image") {
		image, _ := flags.GetString("image")
		body.Image = &image
	}

	if flags.Changed("feature") {
		body.Features, _ = flags.GetStringArray("feature")
	}

	facility, err := handler.service.Update(ctx, id, body, func(updated model.Facility) {
		scope.AddEvent("Facility " + updated.ID + " updated")
		handler.events.Publish(ctx, events.New(events.FacilityUpdated, updated.ID, updated))
	})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update facility")

		return err //nolint:wrapcheck
	}

	response.WithJSON(cmd.OutOrStdout(), facility)

	return nil
}

func (handler *Handler) DeleteFacility(cmd *cobra.Command, args []string) error {
	ctx, scope := handler.otel.NewScope(cmd.Context(), constant.OtelCommandScopeName, constant.OtelCommandScopeName+".DeleteFacility")
	defer scope.End()

	id := args[0]

	err := handler.service.Delete(ctx, id, func(deleted model.Facility) {
		handler.events.Publish(ctx, events.New(events.FacilityDeleted, deleted.ID, deleted))
	})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete facility")

		return err //nolint:wrapcheck
	}

	response.WithMessage(cmd.OutOrStdout(), "Facility deleted successfully")

	return nil
}
