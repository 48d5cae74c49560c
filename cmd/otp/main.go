// Command otp manages one-time password credentials in an encrypted local
// store. It is a thin wrapper over the core packages: all validation,
// crypto and merge logic lives there.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/otpvault/otpvault/pkg/config"
	"github.com/otpvault/otpvault/pkg/credential"
	"github.com/otpvault/otpvault/pkg/otp"
	"github.com/otpvault/otpvault/pkg/otpauth"
	"github.com/otpvault/otpvault/pkg/vault"
)

const usage = `Usage: otp <command> [arguments]

Commands:
  init                     initialize the store and print the master key
  show <alias>             print the one-time code for the alias
  ls                       list all aliases
  add uri <alias>          add a credential from an otpauth:// URI
  add hotp <alias>         add a counter-based credential
  add totp <alias>         add a time-based credential
  rm <alias>               remove the alias
  mv <old> <new>           rename the alias
  export                   print the decrypted store document (JSON)
  import <file>            merge a store document into the store
  uri <alias>              print the provisioning URI for the alias
  qr <alias>               write the provisioning QR code to a PNG file
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	a := &app{cfg: cfg, stdin: bufio.NewReader(os.Stdin)}

	if err := a.run(os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "otp: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	cfg   config.Config
	stdin *bufio.Reader
}

func (a *app) run(command string, args []string) error {
	switch command {
	case "init":
		return a.cmdInit()
	case "show":
		return a.cmdShow(args)
	case "ls":
		return a.cmdList()
	case "add":
		return a.cmdAdd(args)
	case "rm":
		return a.cmdRemove(args)
	case "mv":
		return a.cmdRename(args)
	case "export":
		return a.cmdExport()
	case "import":
		return a.cmdImport(args)
	case "uri":
		return a.cmdURI(args)
	case "qr":
		return a.cmdQR(args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

// masterKey resolves the master key from the environment or, failing that,
// from an interactive prompt.
func (a *app) masterKey() ([]byte, error) {
	encoded := a.cfg.MasterKey
	if encoded == "" {
		var err error
		if encoded, err = a.prompt("Enter master key: "); err != nil {
			return nil, err
		}
	}
	return vault.DecodeKey(encoded)
}

func (a *app) prompt(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	line, err := a.stdin.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (a *app) open() (*vault.Store, []byte, error) {
	key, err := a.masterKey()
	if err != nil {
		return nil, nil, err
	}
	store, err := vault.Read(a.cfg.StorePath, key)
	if err != nil {
		return nil, nil, err
	}
	return store, key, nil
}

func (a *app) cmdInit() error {
	_, key, err := vault.Initialize(a.cfg.StorePath)
	if err != nil {
		return err
	}
	fmt.Println(vault.EncodeKey(key))
	return nil
}

func (a *app) cmdShow(args []string) error {
	flags := flag.NewFlagSet("show", flag.ContinueOnError)
	wait := flags.Int("w", 0, "wait for the next code if fewer seconds remain")
	minimal := flags.Bool("m", false, "print only the code")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return fmt.Errorf("usage: otp show [-w seconds] [-m] <alias>")
	}
	alias := flags.Arg(0)

	store, key, err := a.open()
	if err != nil {
		return err
	}
	cred, err := store.Get(alias)
	if err != nil {
		return err
	}

	switch params := cred.Params.(type) {
	case credential.TOTPParams:
		remaining, err := otp.SecondsRemaining(params, time.Now())
		if err != nil {
			return err
		}
		if *wait > 0 && remaining < *wait {
			time.Sleep(time.Duration(remaining) * time.Second)
		}
		now := time.Now()
		code, err := otp.Code(cred, now)
		if err != nil {
			return err
		}
		if *minimal {
			fmt.Println(otp.FormatCode(code, cred.DigitsCount))
			return nil
		}
		remaining, err = otp.SecondsRemaining(params, now)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s %02ds\n", alias, otp.FormatCode(code, cred.DigitsCount), remaining)
		return nil
	case credential.HOTPParams:
		params.Counter++
		cred.Params = params
		code, err := otp.Code(cred, time.Now())
		if err != nil {
			return err
		}
		if *minimal {
			fmt.Println(otp.FormatCode(code, cred.DigitsCount))
		} else {
			fmt.Printf("%s: %s\n", alias, otp.FormatCode(code, cred.DigitsCount))
		}
		// Persisting the advanced counter is the last step so a failed
		// write never leaves the stored counter ahead of the emitted code.
		if err := store.Set(alias, cred); err != nil {
			return err
		}
		return vault.Write(store, a.cfg.StorePath, key)
	default:
		return fmt.Errorf("alias %q has an unknown OTP type", alias)
	}
}

func (a *app) cmdList() error {
	store, _, err := a.open()
	if err != nil {
		return err
	}
	for _, alias := range store.Aliases() {
		fmt.Println(alias)
	}
	return nil
}

func (a *app) cmdAdd(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: otp add <uri|hotp|totp> <alias>")
	}
	switch args[0] {
	case "uri":
		return a.cmdAddURI(args[1:])
	case "hotp", "totp":
		return a.cmdAddManual(args[0], args[1:])
	default:
		return fmt.Errorf("unknown add subcommand %q", args[0])
	}
}

func (a *app) cmdAddURI(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: otp add uri <alias>")
	}
	alias := args[0]

	store, key, err := a.open()
	if err != nil {
		return err
	}
	if _, ok := store.Credentials[alias]; ok {
		return fmt.Errorf("alias %q exists, consider renaming it with `otp mv`", alias)
	}

	rawURI, err := a.prompt("Enter URI: ")
	if err != nil {
		return err
	}
	descriptor, err := otpauth.Parse(rawURI)
	if err != nil {
		return err
	}
	cred, err := descriptor.Credential()
	if err != nil {
		return err
	}
	if err := store.Add(alias, cred); err != nil {
		return err
	}
	if err := vault.Write(store, a.cfg.StorePath, key); err != nil {
		return err
	}
	fmt.Printf("%s added\n", alias)
	return nil
}

func (a *app) cmdAddManual(otpType string, args []string) error {
	flags := flag.NewFlagSet("add "+otpType, flag.ContinueOnError)
	label := flags.String("l", "", "label")
	issuer := flags.String("i", "", "issuer")
	algorithm := flags.String("a", string(credential.DefaultHashAlgorithm), "hash algorithm (SHA1, SHA256, SHA512)")
	digits := flags.Int("d", credential.DefaultDigitsCount, "digits count (6 or 8)")
	counter := flags.Uint64("c", credential.DefaultHOTPCounter, "initial counter (hotp)")
	period := flags.Uint("p", credential.DefaultTimeStepSeconds, "time step in seconds (totp)")
	initialTime := flags.String("t", "", "initial time, RFC 3339 (totp, defaults to the Unix epoch)")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return fmt.Errorf("usage: otp add %s [flags] <alias>", otpType)
	}
	alias := flags.Arg(0)

	alg, err := credential.ParseHashAlgorithm(*algorithm)
	if err != nil {
		return err
	}

	var params credential.Params
	if otpType == "hotp" {
		params = credential.HOTPParams{Counter: *counter}
	} else {
		initial := time.Unix(0, 0).UTC()
		if *initialTime != "" {
			if initial, err = time.Parse(time.RFC3339, *initialTime); err != nil {
				return fmt.Errorf("invalid initial time: %w", err)
			}
		}
		params = credential.TOTPParams{InitialTime: initial, TimeStepSeconds: uint32(*period)}
	}

	store, key, err := a.open()
	if err != nil {
		return err
	}
	if _, ok := store.Credentials[alias]; ok {
		return fmt.Errorf("alias %q exists, consider renaming it with `otp mv`", alias)
	}

	secret, err := a.prompt("Enter secret: ")
	if err != nil {
		return err
	}
	cred, err := credential.New(credential.Secret(secret), *digits, alg, params, *label, *issuer)
	if err != nil {
		return err
	}
	if err := store.Add(alias, cred); err != nil {
		return err
	}
	if err := vault.Write(store, a.cfg.StorePath, key); err != nil {
		return err
	}
	fmt.Printf("%s added\n", alias)
	return nil
}

func (a *app) cmdRemove(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: otp rm <alias>")
	}
	store, key, err := a.open()
	if err != nil {
		return err
	}
	if err := store.Remove(args[0]); err != nil {
		return err
	}
	if err := vault.Write(store, a.cfg.StorePath, key); err != nil {
		return err
	}
	fmt.Printf("%s deleted\n", args[0])
	return nil
}

func (a *app) cmdRename(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: otp mv <old> <new>")
	}
	store, key, err := a.open()
	if err != nil {
		return err
	}
	if err := store.Rename(args[0], args[1]); err != nil {
		return err
	}
	return vault.Write(store, a.cfg.StorePath, key)
}

func (a *app) cmdExport() error {
	store, _, err := a.open()
	if err != nil {
		return err
	}
	document, err := store.ExportJSON()
	if err != nil {
		return err
	}
	fmt.Println(string(document))
	return nil
}

func (a *app) cmdImport(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: otp import <file>")
	}
	document, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	incoming, err := vault.ImportJSON(document)
	if err != nil {
		return err
	}

	store, key, err := a.open()
	if err != nil {
		return err
	}
	if err := store.Merge(incoming); err != nil {
		return err
	}
	return vault.Write(store, a.cfg.StorePath, key)
}

func (a *app) cmdURI(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: otp uri <alias>")
	}
	uri, err := a.provisioningURI(args[0])
	if err != nil {
		return err
	}
	fmt.Println(uri)
	return nil
}

func (a *app) cmdQR(args []string) error {
	flags := flag.NewFlagSet("qr", flag.ContinueOnError)
	output := flags.String("o", "", "output PNG file (defaults to <alias>.png)")
	size := flags.Int("s", 256, "image edge size in pixels")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return fmt.Errorf("usage: otp qr [-o file] [-s size] <alias>")
	}
	alias := flags.Arg(0)

	uri, err := a.provisioningURI(alias)
	if err != nil {
		return err
	}
	png, err := otpauth.QRCode(uri, *size)
	if err != nil {
		return err
	}

	path := *output
	if path == "" {
		path = alias + ".png"
	}
	return os.WriteFile(path, png, 0o600)
}

func (a *app) provisioningURI(alias string) (string, error) {
	store, _, err := a.open()
	if err != nil {
		return "", err
	}
	cred, err := store.Get(alias)
	if err != nil {
		return "", err
	}
	if cred.Label == "" {
		cred.Label = alias
	}
	return otpauth.BuildURI(cred)
}
