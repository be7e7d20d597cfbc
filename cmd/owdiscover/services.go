package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/owbinding/onewire-go/pkg/classify"
	"github.com/owbinding/onewire-go/pkg/config"
	"github.com/owbinding/onewire-go/pkg/discovery"
	"github.com/owbinding/onewire-go/pkg/log"
	"github.com/owbinding/onewire-go/pkg/owserver"
	"github.com/owbinding/onewire-go/pkg/simbus"
)

// busReader is what a scan needs from a bridge.
type busReader interface {
	discovery.DirectoryReader
	classify.DeviceReader
}

// openBridge connects the reader for one configured bridge.
func openBridge(b config.Bridge) (busReader, io.Closer, error) {
	if b.Simulated() {
		bus, err := simbus.LoadFile(b.Fixture)
		if err != nil {
			return nil, nil, err
		}
		return bus, io.NopCloser(nil), nil
	}
	client := owserver.NewClient(owserver.Config{
		Address: b.Address,
		Timeout: b.Timeout.Std(),
		Logger:  logger,
	})
	return client, client, nil
}

// newService builds the discovery service of one bridge.
func newService(b config.Bridge, reader busReader, sink discovery.ResultSink, events log.Logger) (*discovery.Service, error) {
	return discovery.NewService(discovery.ServiceConfig{
		ScannerConfig: discovery.ScannerConfig{
			BridgeID:    b.ID,
			Reader:      reader,
			Classifier:  classify.New(reader),
			Logger:      logger,
			EventLogger: events,
		},
		Sink:     sink,
		Interval: cfg.Discovery.Interval.Std(),
	})
}

// openServices creates a service per configured bridge. The returned close
// function releases all bridge connections.
func openServices(bridges []config.Bridge, sink discovery.ResultSink, events log.Logger) ([]*discovery.Service, func() error, error) {
	var (
		services []*discovery.Service
		closers  []io.Closer
	)
	closeAll := func() error {
		var errs []error
		for _, c := range closers {
			errs = append(errs, c.Close())
		}
		return errors.Join(errs...)
	}

	for _, b := range bridges {
		reader, closer, err := openBridge(b)
		if err != nil {
			_ = closeAll()
			return nil, nil, fmt.Errorf("bridge %s: %w", b.ID, err)
		}
		closers = append(closers, closer)

		svc, err := newService(b, reader, sink, events)
		if err != nil {
			_ = closeAll()
			return nil, nil, fmt.Errorf("bridge %s: %w", b.ID, err)
		}
		services = append(services, svc)
	}
	return services, closeAll, nil
}
