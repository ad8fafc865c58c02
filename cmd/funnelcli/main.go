// Command funnelcli is an operator CLI for the funnel HTTP API.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ---- config/token store ----

type tokenFile struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func cfgDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "fitfunnel")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "fitfunnel")
}

func tokenPath() string { return filepath.Join(cfgDir(), "token.json") }

func saveToken(tok string, exp time.Time) error {
	_ = os.MkdirAll(cfgDir(), 0o700)
	f, err := os.Create(tokenPath())
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(tokenFile{Token: tok, ExpiresAt: exp})
}

func loadToken() (string, error) {
	b, err := os.ReadFile(tokenPath())
	if err != nil {
		return "", err
	}
	var tf tokenFile
	if err := json.Unmarshal(b, &tf); err != nil {
		return "", err
	}
	if tf.Token == "" || time.Now().After(tf.ExpiresAt) {
		return "", errors.New("no valid token (admin-login required)")
	}
	return tf.Token, nil
}

// ---- http ----

func call(ctx context.Context, method, url string, body any, bearer string) ([]byte, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, r)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(out)))
	}
	return out, nil
}

func readAll(p string) ([]byte, error) {
	if p == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(p)
}

func printBody(b []byte) {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		fmt.Println(strings.TrimSpace(string(b)))
		return
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func usage() {
	fmt.Fprintf(os.Stderr, `funnelcli
Usage:
  funnelcli -addr URL <cmd> [args]

Commands:
  version
  register       -name <name> -email <email> -whatsapp <number>
  login          -email <email>
  logout
  state
  gate
  assessment     -age N -height CM -weight KG -activity <level> -goal <goal>
                 -sleep 1..5 -food 1..5 -location <place>
  complete       -lesson <id>
  admin-login    -u <login> -p <password>          (saves token)
  users
  metrics
  settings-push  -file <settings.json | ->
`)
	os.Exit(2)
}

// ---- main ----

var (
	version   = "dev"
	buildDate = "unknown"
)

// main dispatches subcommands against the HTTP API.
func main() {
	addr := flag.String("addr", "http://localhost:8080", "server base URL")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)
	base := strings.TrimRight(*addr, "/")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cmd {

	case "version":
		fmt.Printf("funnelcli %s (%s)\n", version, buildDate)

	case "register":
		fs := flag.NewFlagSet("register", flag.ExitOnError)
		name := fs.String("name", "", "student name")
		email := fs.String("email", "", "email")
		whatsapp := fs.String("whatsapp", "", "whatsapp number")
		_ = fs.Parse(flag.Args()[1:])
		if *name == "" || *email == "" || *whatsapp == "" {
			fmt.Fprintln(os.Stderr, "need -name, -email and -whatsapp")
			os.Exit(1)
		}
		out, err := call(ctx, http.MethodPost, base+"/api/register", map[string]string{
			"name": *name, "email": *email, "whatsapp": *whatsapp,
		}, "")
		if err != nil {
			fail(err)
		}
		printBody(out)

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		email := fs.String("email", "", "email")
		_ = fs.Parse(flag.Args()[1:])
		if *email == "" {
			fmt.Fprintln(os.Stderr, "need -email")
			os.Exit(1)
		}
		out, err := call(ctx, http.MethodPost, base+"/api/session/restore", map[string]string{"email": *email}, "")
		if err != nil {
			fail(err)
		}
		printBody(out)

	case "logout":
		if _, err := call(ctx, http.MethodPost, base+"/api/session/logout", nil, ""); err != nil {
			fail(err)
		}

	case "state":
		out, err := call(ctx, http.MethodGet, base+"/api/state", nil, "")
		if err != nil {
			fail(err)
		}
		printBody(out)

	case "gate":
		out, err := call(ctx, http.MethodGet, base+"/api/gate", nil, "")
		if err != nil {
			fail(err)
		}
		printBody(out)

	case "assessment":
		fs := flag.NewFlagSet("assessment", flag.ExitOnError)
		age := fs.Int("age", 0, "age")
		height := fs.Float64("height", 0, "height in centimeters")
		weight := fs.Float64("weight", 0, "weight in kilograms")
		activity := fs.String("activity", "", "activity level")
		goal := fs.String("goal", "", "training goal")
		sleep := fs.Int("sleep", 0, "sleep quality 1..5")
		food := fs.Int("food", 0, "food quality 1..5")
		location := fs.String("location", "", "training location")
		_ = fs.Parse(flag.Args()[1:])
		out, err := call(ctx, http.MethodPost, base+"/api/assessment", map[string]any{
			"age": *age, "height": *height, "weight": *weight,
			"activityLevel": *activity, "goal": *goal,
			"sleepQuality": *sleep, "foodQuality": *food,
			"trainingLocation": *location,
		}, "")
		if err != nil {
			fail(err)
		}
		printBody(out)

	case "complete":
		fs := flag.NewFlagSet("complete", flag.ExitOnError)
		lesson := fs.Int("lesson", 0, "lesson id")
		_ = fs.Parse(flag.Args()[1:])
		if *lesson == 0 {
			fmt.Fprintln(os.Stderr, "need -lesson")
			os.Exit(1)
		}
		out, err := call(ctx, http.MethodPost, fmt.Sprintf("%s/api/lessons/%d/complete", base, *lesson), nil, "")
		if err != nil {
			fail(err)
		}
		printBody(out)

	case "admin-login":
		fs := flag.NewFlagSet("admin-login", flag.ExitOnError)
		u := fs.String("u", "", "login")
		p := fs.String("p", "", "password")
		_ = fs.Parse(flag.Args()[1:])
		if *u == "" || *p == "" {
			fmt.Fprintln(os.Stderr, "need -u and -p")
			os.Exit(1)
		}
		out, err := call(ctx, http.MethodPost, base+"/api/admin/login", map[string]string{
			"login": *u, "password": *p,
		}, "")
		if err != nil {
			fail(err)
		}
		var resp struct {
			Token     string    `json:"token"`
			ExpiresAt time.Time `json:"expiresAt"`
		}
		if err := json.Unmarshal(out, &resp); err != nil {
			fail(err)
		}
		if err := saveToken(resp.Token, resp.ExpiresAt); err != nil {
			fail(err)
		}
		fmt.Println("token saved")

	case "users":
		tok, err := loadToken()
		if err != nil {
			fail(err)
		}
		out, err := call(ctx, http.MethodGet, base+"/api/admin/users", nil, tok)
		if err != nil {
			fail(err)
		}
		printBody(out)

	case "metrics":
		tok, err := loadToken()
		if err != nil {
			fail(err)
		}
		out, err := call(ctx, http.MethodGet, base+"/api/admin/metrics", nil, tok)
		if err != nil {
			fail(err)
		}
		printBody(out)

	case "settings-push":
		fs := flag.NewFlagSet("settings-push", flag.ExitOnError)
		file := fs.String("file", "", "settings JSON file or - for stdin")
		_ = fs.Parse(flag.Args()[1:])
		if *file == "" {
			fmt.Fprintln(os.Stderr, "need -file")
			os.Exit(1)
		}
		tok, err := loadToken()
		if err != nil {
			fail(err)
		}
		raw, err := readAll(*file)
		if err != nil {
			fail(err)
		}
		var edited json.RawMessage = raw
		if _, err := call(ctx, http.MethodPut, base+"/api/admin/settings", edited, tok); err != nil {
			fail(err)
		}
		fmt.Println("settings saved")

	default:
		usage()
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
