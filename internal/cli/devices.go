package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/classnote/internal/models"
)

func (a *App) devices(ctx context.Context) {
	if !a.requireUsername() {
		return
	}
	devices, err := a.engine.GetDevices(ctx, a.config.ServerBaseURL, a.config.Username)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	if len(devices) == 0 {
		fmt.Fprintln(a.out, "No devices registered")
		return
	}
	for _, d := range devices {
		fmt.Fprintf(a.out, "%s  %-20s %-10s last seen %s\n", d.ID, d.Name, d.Platform, d.LastSeen)
	}
}

func (a *App) deviceRegister(ctx context.Context) {
	if !a.requireUsername() {
		return
	}
	id, err := a.deviceID(ctx)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	reg := models.DeviceRegistration{
		ID:       id,
		Username: a.config.Username,
		Name:     a.config.DeviceName,
		Platform: a.config.DevicePlatform,
	}
	if err := a.engine.RegisterDevice(ctx, a.config.ServerBaseURL, reg); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	fmt.Fprintf(a.out, "Device registration queued (id %s)\n", id)
}

func (a *App) deviceDelete(ctx context.Context, deviceID string) {
	if err := a.engine.DeleteDevice(ctx, a.config.ServerBaseURL, deviceID); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	fmt.Fprintln(a.out, "Device removal queued")
}
