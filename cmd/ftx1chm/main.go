package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dbehnke/ftx1chm/internal/config"
	"github.com/dbehnke/ftx1chm/internal/console"
	"github.com/dbehnke/ftx1chm/internal/database"
	"github.com/dbehnke/ftx1chm/internal/radio"
	"github.com/dbehnke/ftx1chm/internal/transport"
)

const VERSION = "0.1.0"

var (
	HEADER1 = "FTX-1 channel manager: reads, writes and checks memory channels"
	HEADER2 = "over the CAT interface. For use by licensed amateur operators."
)

// action is the single operation selected on the command line.
type action int

const (
	actionNone action = iota
	actionReadRadio
	actionWriteRadio
	actionCheckData
	actionConsole
	actionListPorts
	actionListSessions
	actionExportSession
	actionDeleteSession
)

type options struct {
	configFile    string
	port          string
	speed         uint
	file          string
	debug         bool
	readRadio     bool
	writeRadio    bool
	checkData     bool
	console       bool
	listPorts     bool
	listSessions  bool
	exportSession string
	deleteSession string
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.configFile, "config", getDefaultConfig(), "Configuration file path")
	flag.StringVar(&o.port, "port", "", "Serial port (overrides config)")
	flag.UintVar(&o.speed, "speed", 0, "Serial speed in baud (overrides config)")
	flag.StringVar(&o.file, "file", "", "CSV file to read or write (overrides config)")
	flag.BoolVar(&o.debug, "debug", false, "Log every CAT frame")
	flag.BoolVar(&o.readRadio, "read-radio", false, "Read memory channels from the radio into the CSV file")
	flag.BoolVar(&o.writeRadio, "write-radio", false, "Write memory channels from the CSV file to the radio")
	flag.BoolVar(&o.checkData, "check-data", false, "Validate the CSV file")
	flag.BoolVar(&o.console, "console", false, "Interactive CAT console")
	flag.BoolVar(&o.listPorts, "list-ports", false, "List serial ports")
	flag.BoolVar(&o.listSessions, "list-sessions", false, "List stored read sessions")
	flag.StringVar(&o.exportSession, "export-session", "", "Export a stored session (id or \"latest\") to the CSV file")
	flag.StringVar(&o.deleteSession, "delete-session", "", "Delete a stored session and its channels")
	version := flag.Bool("version", false, "Show version")
	flag.Parse()

	if *version {
		fmt.Printf("ftx1chm version %s\n", VERSION)
		os.Exit(0)
	}
	return o
}

func (o options) action() (action, error) {
	selected := []struct {
		on bool
		a  action
	}{
		{o.readRadio, actionReadRadio},
		{o.writeRadio, actionWriteRadio},
		{o.checkData, actionCheckData},
		{o.console, actionConsole},
		{o.listPorts, actionListPorts},
		{o.listSessions, actionListSessions},
		{o.exportSession != "", actionExportSession},
		{o.deleteSession != "", actionDeleteSession},
	}

	chosen := actionNone
	for _, s := range selected {
		if !s.on {
			continue
		}
		if chosen != actionNone {
			return actionNone, fmt.Errorf("only one action may be given")
		}
		chosen = s.a
	}
	return chosen, nil
}

// loadConfig reads the config file when it exists and applies flag overrides.
func loadConfig(o options) (*config.Config, error) {
	cfg := config.NewConfig(o.configFile)
	if _, err := os.Stat(o.configFile); err == nil {
		if err := cfg.Load(); err != nil {
			return nil, fmt.Errorf("failed to load config: %v", err)
		}
	} else {
		log.Printf("Config file %s not found, using defaults", o.configFile)
	}

	if o.port != "" {
		cfg.SetPort(o.port)
	}
	if o.speed != 0 {
		cfg.SetSpeed(uint32(o.speed))
	}
	if o.file != "" {
		cfg.SetFile(o.file)
	}
	if o.debug {
		cfg.SetLogDebug(true)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// App ties the configuration to the radio, file and database operations.
type App struct {
	config *config.Config
	logger *log.Logger
}

// openRadio opens the serial port and wraps it in a radio client.
func (a *App) openRadio() (*radio.Radio, *transport.SerialLink, error) {
	link, err := transport.Open(a.config.GetPort(), int(a.config.GetSpeed()), a.config.GetTimeout(), a.logger)
	if err != nil {
		return nil, nil, err
	}
	r := radio.NewWithConfig(link, a.logger, radio.Config{
		ExpectedID:    a.config.GetExpectedID(),
		StrictReplies: a.config.GetStrictReplies(),
		Debug:         a.config.GetLogDebug(),
	})
	return r, link, nil
}

// openDatabase returns nil when the database is disabled.
func (a *App) openDatabase() (*database.DB, error) {
	if !a.config.GetDatabaseEnabled() {
		return nil, nil
	}
	db, err := database.NewDB(database.Config{
		Path:  a.config.GetDatabasePath(),
		Debug: a.config.GetDatabaseDebug(),
	}, log.New(os.Stdout, "[DB] ", log.LstdFlags))
	if err != nil {
		return nil, err
	}
	if err := db.Health(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database %s is not usable: %w", db.Path(), err)
	}
	return db, nil
}

func (a *App) runConsole(ctx context.Context) error {
	r, link, err := a.openRadio()
	if err != nil {
		return err
	}
	defer link.Close()

	fmt.Printf("Connected to %s. Type help for commands.\n", link.Name())
	return console.New(r, console.NewLineEditor(), os.Stdout).Run(ctx)
}

func listPorts() error {
	ports, err := transport.Ports()
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		fmt.Println("No serial ports found")
		return nil
	}
	for _, p := range ports {
		fmt.Println(p)
	}
	return nil
}

func main() {
	o := parseFlags()

	act, err := o.action()
	if err != nil {
		log.Fatalf("%v", err)
	}
	if act == actionNone {
		fmt.Fprintf(os.Stderr, "%s\n%s\n\n", HEADER1, HEADER2)
		flag.Usage()
		os.Exit(2)
	}

	if act == actionListPorts {
		if err := listPorts(); err != nil {
			log.Fatalf("Failed to list ports: %v", err)
		}
		return
	}

	cfg, err := loadConfig(o)
	if err != nil {
		log.Fatalf("%v", err)
	}
	app := &App{config: cfg, logger: log.New(os.Stderr, "", log.LstdFlags)}

	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Printf("Received signal %v, stopping...", sig)
		cancel()
	}()

	switch act {
	case actionReadRadio:
		err = app.readRadio(ctx)
	case actionWriteRadio:
		err = app.writeRadio(ctx)
	case actionCheckData:
		var ok bool
		ok, err = app.checkData()
		if err == nil && !ok {
			os.Exit(1)
		}
	case actionConsole:
		err = app.runConsole(ctx)
	case actionListSessions:
		err = app.listSessions()
	case actionExportSession:
		err = app.exportSession(o.exportSession)
	case actionDeleteSession:
		err = app.deleteSession(o.deleteSession)
	}
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

// getDefaultConfig returns the default configuration file path
func getDefaultConfig() string {
	if _, err := os.Stat("ftx1chm.ini"); err == nil {
		return "ftx1chm.ini"
	}

	systemConfig := "/etc/ftx1chm.ini"
	if _, err := os.Stat(systemConfig); err == nil {
		return systemConfig
	}

	return "ftx1chm.ini"
}
