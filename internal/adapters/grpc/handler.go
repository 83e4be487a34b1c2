package grpc

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/quentinrf/plant-monitor/services/farm-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/farm-service/internal/ports"
	"github.com/quentinrf/plant-monitor/services/farm-service/pkg/farmapi"
)

// FarmServiceHandler implements the gRPC FarmService
type FarmServiceHandler struct {
	farmapi.UnimplementedFarmServiceServer
	dashboard *ports.Dashboard

	stopOnce sync.Once
	stopped  chan struct{}
}

// NewFarmServiceHandler creates a new gRPC handler
func NewFarmServiceHandler(dashboard *ports.Dashboard) *FarmServiceHandler {
	return &FarmServiceHandler{
		dashboard: dashboard,
		stopped:   make(chan struct{}),
	}
}

// Shutdown ends every open watch stream and refuses new ones.
// Call it before grpc.Server.GracefulStop, which waits for streams to return.
func (h *FarmServiceHandler) Shutdown() {
	h.stopOnce.Do(func() { close(h.stopped) })
}

// GracefulStop shuts the handler down and drains srv, forcing a stop after timeout
func GracefulStop(srv *grpc.Server, h *FarmServiceHandler, timeout time.Duration) {
	h.Shutdown()

	done := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		log.Warn().Dur("timeout", timeout).Msg("graceful stop timed out, forcing")
		srv.Stop()
		<-done
	}
}

// ListFarms returns the dashboard cards in display order
func (h *FarmServiceHandler) ListFarms(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	log.Debug().Msg("ListFarms called")

	cards := h.dashboard.Cards(ctx)
	values := make([]*structpb.Value, len(cards))
	for i, card := range cards {
		values[i] = structpb.NewStructValue(convertCardToStatus(card).Struct())
	}

	return &structpb.ListValue{Values: values}, nil
}

// GetFarmStatus returns the current status of one farm
func (h *FarmServiceHandler) GetFarmStatus(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	farmID := domain.NormalizeFarmID(req.GetValue())
	if farmID == "" {
		return nil, status.Error(codes.InvalidArgument, "farm id is required")
	}
	log.Debug().Str("farm_id", farmID).Msg("GetFarmStatus called")

	return convertCardToStatus(h.dashboard.Card(ctx, farmID)).Struct(), nil
}

// WatchFarmStatus streams every snapshot published for a listed farm.
// Farms without a feed get their resolved status once.
func (h *FarmServiceHandler) WatchFarmStatus(req *wrapperspb.StringValue, stream grpc.ServerStreamingServer[structpb.Struct]) error {
	farmID := domain.NormalizeFarmID(req.GetValue())
	if farmID == "" {
		return status.Error(codes.InvalidArgument, "farm id is required")
	}
	ctx := stream.Context()

	feed, unsubscribe, ok := h.dashboard.Subscribe(farmID)
	if !ok {
		return stream.Send(convertCardToStatus(h.dashboard.Card(ctx, farmID)).Struct())
	}
	defer unsubscribe()

	log.Info().Str("farm_id", farmID).Msg("watch started")
	live := h.dashboard.Live(farmID)

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("farm_id", farmID).Msg("watch ended")
			return nil
		case <-h.stopped:
			log.Info().Str("farm_id", farmID).Msg("watch closed by shutdown")
			return status.Error(codes.Unavailable, "server shutting down")
		case snapshot, ok := <-feed:
			if !ok {
				return nil
			}
			card := ports.NewFarmCard(farmID, live, snapshot)
			if err := stream.Send(convertCardToStatus(card).Struct()); err != nil {
				log.Warn().Err(err).Str("farm_id", farmID).Msg("failed to send status")
				return err
			}
		}
	}
}

// convertCardToStatus converts domain model to the wire status
func convertCardToStatus(card ports.FarmCard) farmapi.FarmStatus {
	return farmapi.FarmStatus{
		FarmID:        card.ID,
		Live:          card.Live,
		Temperature:   card.Snapshot.Temperature,
		Humidity:      card.Snapshot.Humidity,
		Sunlight:      card.Snapshot.Sunlight,
		LightCategory: card.LightCategory,
	}
}
