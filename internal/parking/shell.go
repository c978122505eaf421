package parking

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Shell reads line-oriented commands and applies them to a Lot.
type Shell struct {
	lot       *Lot
	scanner   *bufio.Scanner
	out       io.Writer
	telemetry *TelemetryProvider
}

func NewShell(lot *Lot, in io.Reader, out io.Writer, telemetry *TelemetryProvider) *Shell {
	return &Shell{
		lot:       lot,
		scanner:   bufio.NewScanner(in),
		out:       out,
		telemetry: telemetry,
	}
}

// Run processes commands until the input is exhausted or ctx is cancelled.
// Cancellation is honored while a read is blocked; the reading goroutine
// exits once the input returns.
func (s *Shell) Run(ctx context.Context) {
	tracer := s.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "shell.run")
	defer span.End()

	span.AddEvent("shell_started")

	lines := s.readLines(ctx)
	for ctx.Err() == nil {
		var line string
		select {
		case <-ctx.Done():
			span.AddEvent("shell_cancelled")
			return
		case l, ok := <-lines:
			if !ok {
				span.AddEvent("shell_ended")
				return
			}
			line = l
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		// Create a new span for each command
		cmdCtx, cmdSpan := tracer.Start(ctx, "shell.process_command",
			trace.WithAttributes(attribute.String("command.input", input)))

		s.processCommand(cmdCtx, input)
		cmdSpan.End()
	}

	span.AddEvent("shell_cancelled")
}

func (s *Shell) readLines(ctx context.Context) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		for s.scanner.Scan() {
			select {
			case lines <- s.scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

func (s *Shell) processCommand(ctx context.Context, input string) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return
	}

	command := parts[0]
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("command.name", command))

	switch command {
	case "add_spot":
		s.handleAddSpot(ctx, parts)
	case "remove_spot":
		s.handleRemoveSpot(ctx, parts)
	case "enter":
		s.handleEnter(ctx, parts)
	case "exit":
		s.handleExit(ctx, parts)
	case "status":
		s.handleStatus(ctx)
	case "find":
		s.handleFind(ctx, parts)
	case "prices":
		s.handlePrices()
	default:
		trace.SpanFromContext(ctx).AddEvent("unknown_command", trace.WithAttributes(
			attribute.String("unknown_command", command),
		))
		s.printf("Unknown command: %s\n", command)
	}
}

func (s *Shell) handleAddSpot(ctx context.Context, parts []string) {
	ctx, span := s.telemetry.Tracer().Start(ctx, "shell.add_spot_command")
	defer span.End()

	if len(parts) != 3 {
		span.AddEvent("invalid_arguments")
		s.println("Usage: add_spot <category> <id>")
		return
	}

	category, id, ok := s.parseSpotArgs(parts[1], parts[2])
	if !ok {
		span.AddEvent("invalid_arguments")
		return
	}

	spot, err := s.lot.AddSpot(ctx, category, id)
	if err != nil {
		span.RecordError(err)
		s.printf("Error: %s\n", err.Error())
		return
	}

	span.AddEvent("spot_added")
	s.printf("Added %s spot %d (price %d)\n", spot.Category, spot.ID, spot.Price())
}

func (s *Shell) handleRemoveSpot(ctx context.Context, parts []string) {
	ctx, span := s.telemetry.Tracer().Start(ctx, "shell.remove_spot_command")
	defer span.End()

	if len(parts) != 3 {
		span.AddEvent("invalid_arguments")
		s.println("Usage: remove_spot <category> <id>")
		return
	}

	category, id, ok := s.parseSpotArgs(parts[1], parts[2])
	if !ok {
		span.AddEvent("invalid_arguments")
		return
	}

	if err := s.lot.RemoveSpot(ctx, category, id); err != nil {
		span.RecordError(err)
		s.printf("Error: %s\n", err.Error())
		return
	}

	span.AddEvent("spot_removed")
	s.printf("Removed %s spot %d\n", category, id)
}

func (s *Shell) handleEnter(ctx context.Context, parts []string) {
	ctx, span := s.telemetry.Tracer().Start(ctx, "shell.enter_command")
	defer span.End()

	if len(parts) != 3 {
		span.AddEvent("invalid_arguments")
		s.println("Usage: enter <vehicle_number> <category>")
		return
	}

	vehicle, ok := s.parseVehicle(parts[1], parts[2])
	if !ok {
		span.AddEvent("invalid_arguments")
		return
	}

	span.SetAttributes(
		attribute.Int("vehicle.number", vehicle.Number),
		attribute.String("vehicle.category", vehicle.Category.String()),
	)

	spot, err := s.lot.Park(ctx, vehicle)
	switch {
	case errors.Is(err, ErrNoSpotAvailable):
		span.AddEvent("entry_refused")
		s.println("Sorry, no spot available")
		return
	case err != nil:
		span.RecordError(err)
		s.printf("Error: %s\n", err.Error())
		return
	}

	span.AddEvent("entry_allowed", trace.WithAttributes(
		attribute.Int("spot.id", spot.ID),
	))
	s.printf("Allocated %s spot %d, price %d\n", spot.Category, spot.ID, spot.Price())
}

func (s *Shell) handleExit(ctx context.Context, parts []string) {
	ctx, span := s.telemetry.Tracer().Start(ctx, "shell.exit_command")
	defer span.End()

	if len(parts) != 3 {
		span.AddEvent("invalid_arguments")
		s.println("Usage: exit <vehicle_number> <category>")
		return
	}

	vehicle, ok := s.parseVehicle(parts[1], parts[2])
	if !ok {
		span.AddEvent("invalid_arguments")
		return
	}

	span.SetAttributes(attribute.Int("vehicle.number", vehicle.Number))

	spot, err := s.lot.Leave(ctx, vehicle)
	switch {
	case errors.Is(err, ErrVehicleNotParked):
		span.AddEvent("vehicle_not_parked")
		s.printf("Vehicle %d is not parked\n", vehicle.Number)
		return
	case err != nil:
		span.RecordError(err)
		s.printf("Error: %s\n", err.Error())
		return
	}

	span.AddEvent("exit_allowed")
	s.printf("%s spot %d is free\n", spot.Category, spot.ID)
}

func (s *Shell) handleStatus(ctx context.Context) {
	_, span := s.telemetry.Tracer().Start(ctx, "shell.status_command")
	defer span.End()

	statuses := s.lot.Status()

	s.println("Category\tSpot\tVehicle")
	occupied := 0
	for _, status := range statuses {
		for _, spot := range status.Spots {
			vehicle := "-"
			if spot.Occupied {
				vehicle = strconv.Itoa(spot.VehicleNumber)
				occupied++
			}
			s.printf("%s\t\t%d\t%s\n", status.Category, spot.ID, vehicle)
		}
	}

	span.SetAttributes(attribute.Int("occupied_spots_count", occupied))
}

func (s *Shell) handleFind(ctx context.Context, parts []string) {
	ctx, span := s.telemetry.Tracer().Start(ctx, "shell.find_command")
	defer span.End()

	if len(parts) != 2 {
		span.AddEvent("invalid_arguments")
		s.println("Usage: find <vehicle_number>")
		return
	}

	number, err := strconv.Atoi(parts[1])
	if err != nil {
		span.RecordError(fmt.Errorf("invalid vehicle number: %s", parts[1]))
		s.println("Invalid vehicle number")
		return
	}

	spot, err := s.lot.Locate(ctx, number)
	if err != nil {
		span.AddEvent("vehicle_not_found")
		s.println("Not found")
		return
	}

	s.printf("%s %d\n", spot.Category, spot.ID)
}

func (s *Shell) handlePrices() {
	prices := s.lot.Prices()
	categories := make([]string, 0, len(prices))
	for c := range prices {
		categories = append(categories, c.String())
	}
	sort.Strings(categories)

	for _, c := range categories {
		s.printf("%s\t%d\n", c, prices[Category(c)])
	}
}

func (s *Shell) parseSpotArgs(rawCategory, rawID string) (Category, int, bool) {
	category, err := ParseCategory(rawCategory)
	if err != nil {
		s.println("Invalid category")
		return "", 0, false
	}

	id, err := strconv.Atoi(rawID)
	if err != nil || id <= 0 {
		s.println("Invalid spot id")
		return "", 0, false
	}

	return category, id, true
}

func (s *Shell) parseVehicle(rawNumber, rawCategory string) (*Vehicle, bool) {
	number, err := strconv.Atoi(rawNumber)
	if err != nil || number <= 0 {
		s.println("Invalid vehicle number")
		return nil, false
	}

	category, err := ParseCategory(rawCategory)
	if err != nil {
		s.println("Invalid category")
		return nil, false
	}

	return NewVehicle(number, category), true
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Shell) println(line string) {
	fmt.Fprintln(s.out, line)
}
