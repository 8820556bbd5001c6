package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register the output driver

	"github.com/leandrodaf/midiinterp/internal/config"
	"github.com/leandrodaf/midiinterp/internal/logger"
	"github.com/leandrodaf/midiinterp/sdk/contracts"
	"github.com/leandrodaf/midiinterp/sdk/interpolator"
	"github.com/leandrodaf/midiinterp/sdk/midi"
)

func main() {
	configPath := flag.String("config", "", "path to config.json (default ~/.config/midiinterp/config.json)")
	list := flag.Bool("list", false, "list input devices and output ports, then exit")
	save := flag.Bool("save", false, "write the effective config back to disk")
	flag.Parse()

	log := logger.NewStandardLogger()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Error("Failed to load config", log.Field().Error("error", err))
		os.Exit(1)
	}
	log.SetLevel(contracts.ParseLogLevel(cfg.LogLevel))
	if cfg.LogFile != "" {
		log.SetDestination(contracts.FileLog, cfg.LogFile)
	}

	client, err := midi.NewMIDIClient(
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.ParseLogLevel(cfg.LogLevel)),
	)
	if err != nil {
		log.Error("Failed to initialize MIDI client", log.Field().Error("error", err))
		os.Exit(1)
	}
	defer client.Stop()

	devices, err := client.ListDevices()
	if err != nil || len(devices) == 0 {
		log.Error("No MIDI devices found or error listing devices", log.Field().Error("error", err))
		os.Exit(1)
	}
	if *list {
		for _, d := range devices {
			fmt.Printf("in  %2d  %s (%s)\n", d.ID, d.Name, d.Manufacturer)
		}
		for _, name := range midi.OutputPorts() {
			fmt.Printf("out     %s\n", name)
		}
		return
	}

	interp, err := interpolator.NewInterpolator(
		contracts.WithInterpolatorLogger(log),
		contracts.WithMix(cfg.Mix),
		contracts.WithChannels(cfg.ChannelA, cfg.ChannelB),
		contracts.WithSampleRate(cfg.SampleRate),
		contracts.WithBlockSize(cfg.BlockSize),
	)
	if err != nil {
		log.Error("Invalid interpolator settings", log.Field().Error("error", err))
		os.Exit(1)
	}

	sink, err := midi.NewPortSink(cfg.OutputPort, log)
	if err != nil {
		log.Error("Failed to open MIDI output", log.Field().Error("error", err))
		os.Exit(1)
	}
	defer sink.Close()

	if err = client.SelectDevice(cfg.InputID); err != nil {
		log.Error("Failed to select MIDI device", log.Field().Error("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eventChannel := make(chan contracts.MIDI, 256)
	client.StartCapture(eventChannel)

	fmt.Println("Interpolating MIDI input... Press Ctrl+C to exit.")
	if err := interpolator.NewRunner(interp, sink).Run(ctx, eventChannel); err != nil {
		log.Error("Runner failed", log.Field().Error("error", err))
	}

	if *save {
		cfg.Mix = interp.Mix()
		cfg.ChannelA, cfg.ChannelB = interp.Channels()
		if err := saveConfig(cfg, *configPath); err != nil {
			log.Error("Failed to save config", log.Field().Error("error", err))
		}
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}

func saveConfig(cfg *config.Config, path string) error {
	if path == "" {
		return cfg.Save()
	}
	return cfg.SaveFile(path)
}
