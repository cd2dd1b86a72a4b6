// tempoctl is a command line client for the Tempo scheduling API.
//
// It talks to a running tempo-server over HTTP and covers the common
// operational tasks: scheduling a meeting, inspecting free slots,
// seeding calendars from a YAML file, and hashing an API key for the
// server's API_KEY_HASH setting.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/slotwise/tempo/api/internal/model"
)

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "tempoctl",
		Usage: "command line client for the Tempo scheduling API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Usage:   "base URL of the tempo-server",
				Value:   "http://localhost:8080",
				EnvVars: []string{"TEMPO_SERVER"},
			},
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "bearer API key, if the server requires one",
				EnvVars: []string{"TEMPO_API_KEY"},
			},
		},
		Commands: []*cli.Command{
			scheduleCommand(),
			slotsCommand(),
			seedCommand(),
			keyHashCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func scheduleCommand() *cli.Command {
	return &cli.Command{
		Name:  "schedule",
		Usage: "schedule a meeting for a set of participants",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Required: true},
			&cli.StringFlag{Name: "description"},
			&cli.StringSliceFlag{
				Name:     "participant",
				Aliases:  []string{"p"},
				Usage:    "participant identity, repeatable",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "duration",
				Usage: "meeting length in minutes",
				Value: 30,
			},
			&cli.TimestampFlag{
				Name:   "from",
				Usage:  "start of the preferred window (RFC 3339)",
				Layout: time.RFC3339,
			},
			&cli.TimestampFlag{
				Name:   "to",
				Usage:  "end of the preferred window (RFC 3339)",
				Layout: time.RFC3339,
			},
		},
		Action: func(c *cli.Context) error {
			req := model.MeetingRequest{
				Title:           c.String("title"),
				Description:     c.String("description"),
				Participants:    c.StringSlice("participant"),
				DurationMinutes: c.Int("duration"),
			}

			from, to := c.Timestamp("from"), c.Timestamp("to")
			if (from == nil) != (to == nil) {
				return fmt.Errorf("--from and --to must be given together")
			}
			if from != nil {
				req.PreferredTimeRange = &model.TimeRange{Start: *from, End: *to}
			}

			var result struct {
				Data model.ScheduleResult `json:"data"`
			}
			if err := newClient(c).do(http.MethodPost, "/v1/meetings", req, &result); err != nil {
				return err
			}

			if !result.Data.Success {
				fmt.Println(result.Data.Message)
				for _, alt := range result.Data.SuggestedAlternatives {
					fmt.Printf("  alternative: %s\n", alt.Format(time.RFC3339))
				}
				return nil
			}

			fmt.Printf("Scheduled %q at %s (event %s)\n",
				result.Data.Meeting.Title,
				result.Data.ScheduledTime.Format(time.RFC3339),
				result.Data.Meeting.ID,
			)
			return nil
		},
	}
}

func slotsCommand() *cli.Command {
	return &cli.Command{
		Name:      "slots",
		Usage:     "list free slots on one calendar",
		ArgsUsage: "<identity>",
		Flags: []cli.Flag{
			&cli.TimestampFlag{
				Name:     "from",
				Usage:    "window start (RFC 3339)",
				Layout:   time.RFC3339,
				Required: true,
			},
			&cli.TimestampFlag{
				Name:     "to",
				Usage:    "window end (RFC 3339)",
				Layout:   time.RFC3339,
				Required: true,
			},
			&cli.IntFlag{
				Name:  "duration",
				Usage: "slot length in minutes",
				Value: 30,
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one identity argument")
			}
			identity := c.Args().First()

			path := slotsPath(identity, *c.Timestamp("from"), *c.Timestamp("to"), c.Int("duration"))

			var result struct {
				Data []time.Time `json:"data"`
			}
			if err := newClient(c).do(http.MethodGet, path, nil, &result); err != nil {
				return err
			}

			if len(result.Data) == 0 {
				fmt.Println("no free slots")
				return nil
			}
			for _, slot := range result.Data {
				fmt.Println(slot.Format(time.RFC3339))
			}
			return nil
		},
	}
}

// slotsPath builds the slots query URL. Values are escaped so identities
// with reserved characters and timestamps with zone offsets survive the
// round trip; a raw "+02:00" would decode server-side as a space.
func slotsPath(identity string, from, to time.Time, duration int) string {
	q := url.Values{}
	q.Set("from", from.Format(time.RFC3339))
	q.Set("to", to.Format(time.RFC3339))
	q.Set("duration", strconv.Itoa(duration))
	return "/v1/calendars/" + url.PathEscape(identity) + "/slots?" + q.Encode()
}

// seedFile is the YAML layout accepted by the seed command. Each event
// lands on the calendar named by `calendar`, defaulting to the first
// participant.
type seedFile struct {
	Events []struct {
		Calendar     string    `yaml:"calendar"`
		Title        string    `yaml:"title"`
		Description  string    `yaml:"description"`
		Start        time.Time `yaml:"start"`
		End          time.Time `yaml:"end"`
		Participants []string  `yaml:"participants"`
	} `yaml:"events"`
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:      "seed",
		Usage:     "load calendar events from a YAML file",
		ArgsUsage: "<file>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one file argument")
			}

			raw, err := os.ReadFile(c.Args().First())
			if err != nil {
				return err
			}

			var seed seedFile
			if err := yaml.Unmarshal(raw, &seed); err != nil {
				return fmt.Errorf("parse seed file: %w", err)
			}

			client := newClient(c)
			for i, ev := range seed.Events {
				calendar := ev.Calendar
				if calendar == "" && len(ev.Participants) > 0 {
					calendar = ev.Participants[0]
				}
				if calendar == "" {
					return fmt.Errorf("event %d: no calendar and no participants", i)
				}

				req := model.CreateEventRequest{
					Title:        ev.Title,
					Description:  ev.Description,
					Start:        ev.Start,
					End:          ev.End,
					Participants: ev.Participants,
				}

				var created struct {
					Data model.Event `json:"data"`
				}
				path := "/v1/calendars/" + calendar + "/events"
				if err := client.do(http.MethodPost, path, req, &created); err != nil {
					return fmt.Errorf("event %d (%s): %w", i, ev.Title, err)
				}
				fmt.Printf("created %s on %s: %q\n", created.Data.ID, calendar, ev.Title)
			}
			return nil
		},
	}
}

func keyHashCommand() *cli.Command {
	return &cli.Command{
		Name:      "key-hash",
		Usage:     "print the bcrypt hash of an API key for API_KEY_HASH",
		ArgsUsage: "<key>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one key argument")
			}

			hash, err := bcrypt.GenerateFromPassword([]byte(c.Args().First()), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Println(string(hash))
			return nil
		},
	}
}

// apiClient is a thin JSON client over the server's data envelope.
type apiClient struct {
	base string
	key  string
	http *http.Client
}

func newClient(c *cli.Context) *apiClient {
	return &apiClient{
		base: c.String("server"),
		key:  c.String("api-key"),
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *apiClient) do(method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.key != "" {
		req.Header.Set("Authorization", "Bearer "+c.key)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		var problem model.ProblemDetails
		if err := json.NewDecoder(resp.Body).Decode(&problem); err == nil && problem.Title != "" {
			return &problem
		}
		return fmt.Errorf("server returned %s", resp.Status)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
