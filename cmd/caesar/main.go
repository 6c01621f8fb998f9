package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"caesar/internal/caesar"
	"caesar/internal/ctxlog"
	"caesar/internal/journal"
	"caesar/internal/rec"

	"golang.org/x/sync/errgroup"
)

type options struct {
	message string
	file    string
	method  string
	shift   int
	encrypt bool
	decrypt bool
	crack   bool
	history bool
	config  string
}

func main() {
	var opts options
	flag.StringVar(&opts.file, "f", "", "file containing text to encrypt")
	flag.StringVar(&opts.method, "m", "", "cipher method: rotation or modular")
	flag.IntVar(&opts.shift, "r", 0, "distance to rotate")
	flag.BoolVar(&opts.encrypt, "e", false, "encrypt the message")
	flag.BoolVar(&opts.decrypt, "d", false, "decrypt a previously encrypted message")
	flag.BoolVar(&opts.crack, "c", false, "print candidate decryptions for every shift")
	flag.BoolVar(&opts.history, "history", false, "print recorded runs")
	flag.StringVar(&opts.config, "config", "config.yaml", "config file")
	debug := flag.Bool("v", false, "debug logging")
	flag.Parse()
	opts.message = flag.Arg(0)

	// Remember which flags were given so config defaults only fill the gaps.
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ctx = ctxlog.Setup(ctx, "caesar", *debug)
	logger := ctxlog.Get(ctx)

	err := run(ctx, opts, set)
	if err != nil {
		logger.Error("caesar failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, set map[string]bool) (err error) {
	defer rec.Error(&err)

	logger := ctxlog.Get(ctx)

	config, err := LoadConfig(ctx, opts.config)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	shift := config.Shift
	if set["r"] {
		shift = opts.shift
	}
	name := config.Method
	if set["m"] {
		name = opts.method
	}
	method, err := caesar.ParseMethod(name)
	if err != nil {
		return err
	}
	logger.Debug("resolved parameters", "method", method.String(), "shift", shift)

	var jnl *journal.Journal
	if config.Journal.File != "" {
		jnl, err = journal.Open(config.Journal)
		if err != nil {
			return err
		}
		defer ctxlog.Close(ctx, "journal", jnl.Closer())
	}

	if opts.history {
		return printHistory(jnl)
	}

	message := opts.message
	if opts.file != "" {
		message, err = readMessage(opts.file)
		if err != nil {
			return err
		}
	}

	if opts.crack {
		return crack(ctx, config, jnl, message, method)
	}

	if opts.encrypt && opts.decrypt {
		return fmt.Errorf("cannot encrypt and decrypt in one operation")
	}

	direction := caesar.Encrypt
	switch {
	case opts.decrypt:
		direction = caesar.Decrypt
	case opts.encrypt:
	case message == "":
		// No message and no explicit direction: decrypt the ciphertext a
		// previous run produced.
		direction = caesar.Decrypt
	}

	if direction == caesar.Encrypt && message == "" {
		return fmt.Errorf("there is no text to encrypt")
	}
	if direction == caesar.Decrypt && message == "" {
		message, err = readCiphertext(config, jnl)
		if err != nil {
			return err
		}
	}

	out, err := caesar.Transform(message, shift, method, direction)
	if err != nil {
		return err
	}

	file := config.EncryptedFile
	if direction == caesar.Decrypt {
		file = config.DecryptedFile
	}
	err = writeOutput(file, out)
	if err != nil {
		return err
	}
	logger.Info("done", "direction", direction.String(), "method", method.String(), "shift", shift, "file", file)

	if jnl == nil {
		return nil
	}
	err = jnl.Append(journal.Entry{
		Direction: direction.String(),
		Method:    method.String(),
		Shift:     shift,
		Output:    out,
	})
	if err != nil {
		return err
	}

	return nil
}

// readCiphertext sources the ciphertext for decryption: the encrypted file
// first, then the journal's latest encrypt entry when the file is gone.
func readCiphertext(config Config, jnl *journal.Journal) (string, error) {
	text, err := readMessage(config.EncryptedFile)
	if err == nil {
		return text, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	if jnl != nil {
		entry, found, jerr := jnl.Last(caesar.Encrypt.String())
		if jerr != nil {
			return "", jerr
		}
		if found {
			return entry.Output, nil
		}
	}

	return "", fmt.Errorf("no ciphertext to decrypt: %w", err)
}

// crack decrypts the ciphertext under every possible shift and prints the
// candidates, one per line.
func crack(ctx context.Context, config Config, jnl *journal.Journal, message string, method caesar.Method) error {
	if message == "" {
		var err error
		message, err = readCiphertext(config, jnl)
		if err != nil {
			return err
		}
	}

	candidates := make([]string, len(caesar.Lowercase))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for shift := range candidates {
		shift := shift
		g.Go(func() error {
			out, err := caesar.Transform(message, shift, method, caesar.Decrypt)
			if err != nil {
				return err
			}
			candidates[shift] = out
			return nil
		})
	}
	err := g.Wait()
	if err != nil {
		return err
	}

	for shift, out := range candidates {
		fmt.Printf("%2d %s\n", shift, out)
	}
	return nil
}

func printHistory(jnl *journal.Journal) error {
	if jnl == nil {
		return fmt.Errorf("journalling is disabled")
	}

	entries, err := jnl.Entries()
	if err != nil {
		return err
	}

	for _, e := range entries {
		fmt.Printf("%s %-7s %-8s r=%-3d %s\n", e.Time.Format(time.RFC3339), e.Direction, e.Method, e.Shift, e.Output)
	}
	return nil
}
