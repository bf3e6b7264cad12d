package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/lightsd/internal/api/models"
	"github.com/smazurov/lightsd/internal/lights"
)

func toLightState(s lights.State) models.LightState {
	return models.LightState{
		Color:      lights.FormatColor(s.Color),
		FlashMode:  s.FlashMode.String(),
		FlashOnMS:  s.FlashOnMS,
		FlashOffMS: s.FlashOffMS,
		Lit:        lights.IsLit(s),
		Brightness: lights.Brightness(s),
	}
}

func (s *Server) registerLightRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-lights",
		Method:      http.MethodGet,
		Path:        "/api/lights",
		Summary:     "List lights",
		Description: "Lights available on this hardware and the stored LED requests",
		Tags:        []string{"lights"},
		Errors:      []int{401},
		Security:    withAuth(),
	}, func(_ context.Context, _ *struct{}) (*models.LightsResponse, error) {
		available := s.options.Table.Available()
		names := make([]string, len(available))
		for i, l := range available {
			names[i] = string(l)
		}

		snap := s.options.Controller.Snapshot()
		return &models.LightsResponse{
			Body: models.LightsData{
				Hardware:     s.options.Hardware,
				Lights:       names,
				Battery:      toLightState(snap.Battery),
				Notification: toLightState(snap.Notification),
				Rendered:     string(snap.Rendered),
			},
		}, nil
	})

	huma.Register(s.api, huma.Operation{
		OperationID: "set-light",
		Method:      http.MethodPut,
		Path:        "/api/lights/{light}",
		Summary:     "Set light",
		Description: "Apply a color and flash request to one light",
		Tags:        []string{"lights"},
		Errors:      []int{400, 401, 404, 500},
		Security:    withAuth(),
	}, func(_ context.Context, input *models.SetLightRequest) (*models.SetLightResponse, error) {
		handler, err := s.options.Table.Open(input.Light)
		if err != nil {
			return nil, huma.Error404NotFound(fmt.Sprintf("light %q not available", input.Light))
		}

		state, err := requestState(input)
		if err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}

		if err := handler(state); err != nil {
			status := lights.Status(err)
			s.logger.Error("Light update failed", "light", input.Light, "status", status, "error", err)
			detail := &huma.ErrorDetail{Location: "status", Message: err.Error(), Value: status}
			var devErr *lights.DeviceError
			if errors.As(err, &devErr) {
				detail.Location = devErr.Path
			}
			return nil, huma.Error500InternalServerError(
				fmt.Sprintf("light %q update failed with status %d", input.Light, status), detail)
		}

		return &models.SetLightResponse{
			Body: models.SetLightData{Light: input.Light, Status: 0},
		}, nil
	})
}

func requestState(input *models.SetLightRequest) (lights.State, error) {
	color, err := lights.ParseColor(input.Body.Color)
	if err != nil {
		return lights.State{}, err
	}
	mode, err := lights.ParseFlashMode(input.Body.FlashMode)
	if err != nil {
		return lights.State{}, err
	}
	return lights.State{
		Color:      color,
		FlashMode:  mode,
		FlashOnMS:  input.Body.FlashOnMS,
		FlashOffMS: input.Body.FlashOffMS,
	}, nil
}
