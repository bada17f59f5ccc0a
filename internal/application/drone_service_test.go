package application

import (
	"context"
	"errors"
	"testing"

	"github.com/Tokshabayev/LetunTrafficManagement/internal/domain"
	"github.com/Tokshabayev/LetunTrafficManagement/internal/route"
	"github.com/Tokshabayev/LetunTrafficManagement/internal/zones"
)

func TestBlockAndUnblockDrone(t *testing.T) {
	drones := &droneRepoStub{drone: &domain.Drone{ID: 4, Model: "DJI", IsActive: true}}
	svc := NewDroneService(drones)
	ctx := context.Background()

	if err := svc.Block(ctx, 4); err != nil {
		t.Fatalf("expected block to succeed, got %v", err)
	}
	if drones.drone.IsActive {
		t.Error("expected drone inactive after block")
	}

	drone, err := svc.GetByID(ctx, 4)
	if err != nil {
		t.Fatal(err)
	}
	if drone.Status() != domain.DroneStatusBlocked {
		t.Errorf("expected blocked status, got %s", drone.Status())
	}

	if err := svc.Unblock(ctx, 4); err != nil {
		t.Fatalf("expected unblock to succeed, got %v", err)
	}
	if !drones.drone.IsActive {
		t.Error("expected drone active after unblock")
	}
}

func TestBlockedDroneNotAssigned(t *testing.T) {
	drones := &droneRepoStub{drone: &domain.Drone{ID: 4, Model: "DJI", IsActive: true}}
	droneSvc := NewDroneService(drones)
	flights := newFlightRepoStub(drones)
	flightSvc := NewFlightService(flights, drones, route.NewValidator(zones.DefaultRegistry()), nil)
	ctx := context.Background()

	if err := droneSvc.Block(ctx, 4); err != nil {
		t.Fatal(err)
	}

	if _, err := flightSvc.Create(ctx, 1, clearRoute); !errors.Is(err, ErrNoAvailableDrone) {
		t.Errorf("expected no-available-drone, got %v", err)
	}
}
