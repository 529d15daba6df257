package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/honganh1206/pasty/api"
	"github.com/honganh1206/pasty/clipboard"
	"github.com/honganh1206/pasty/config"
	"github.com/honganh1206/pasty/credstore"
	"github.com/honganh1206/pasty/ui"
	"github.com/honganh1206/pasty/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	v       *viper.Viper
	cfgPath string
	envPath string
	verbose bool

	localClipboard clipboard.Clipboard = clipboard.System()
)

var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// Longest item shown in table output.
const tableItemWidth = 60

func setup(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	if err := config.LoadEnvFile(envPath); err != nil {
		return err
	}

	if cfgPath == "" {
		path, err := config.DefaultPath()
		if err != nil {
			return err
		}
		cfgPath = path
	}

	return nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(v, cfgPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolvePassword(cfg *config.Config) (string, error) {
	if cfg.Password != "" {
		return cfg.Password, nil
	}

	password, err := credstore.Get(cfg.Username)
	if errors.Is(err, credstore.ErrNotFound) {
		return "", fmt.Errorf("no password stored for %s, run 'pasty login' or set %s_PASSWORD", cfg.Username, config.EnvPrefix)
	}
	return password, err
}

func newClient(cmd *cobra.Command, cfg *config.Config, password string) (*api.Client, error) {
	creds := api.NewCredentials(cfg.Username, password)
	return api.NewClient(cmd.Context(), cfg.Server, creds, cfg.VerifyTLS,
		api.WithTimeout(cfg.Timeout),
		api.WithLogger(slog.Default()),
	)
}

// connect loads the config and returns a client bound to the configured server.
func connect(cmd *cobra.Command) (*api.Client, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	password, err := resolvePassword(cfg)
	if err != nil {
		return nil, nil, err
	}

	c, err := newClient(cmd, cfg, password)
	if err != nil {
		return nil, nil, err
	}

	return c, cfg, nil
}

func LoginHandler(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(v, cfgPath)
	if err != nil {
		return err
	}

	in := newLineReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	if cfg.Server == "" {
		if cfg.Server, err = prompt(out, in, "Server: "); err != nil {
			return err
		}
	}
	if cfg.Username == "" {
		if cfg.Username, err = prompt(out, in, "Username: "); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	password := cfg.Password
	if password == "" {
		if password, err = readPassword(cmd, in); err != nil {
			return err
		}
	}
	if password == "" {
		return errors.New("password cannot be empty")
	}

	c, err := newClient(cmd, cfg, password)
	if err != nil {
		return err
	}

	// The probe does not authenticate, so check the credentials explicitly.
	if _, err := c.ListItems(cmd.Context()); err != nil {
		return fmt.Errorf("failed to verify credentials: %w", err)
	}

	if err := credstore.Set(cfg.Username, password); err != nil {
		return err
	}
	if err := config.Save(cfg, cfgPath); err != nil {
		return err
	}

	slog.Debug("saved config", "path", cfgPath)
	fmt.Fprint(out, ui.FormatResult(ui.ResultFormat{Name: fmt.Sprintf("Logged in to %s as %s", c.BaseURL(), cfg.Username)}))

	return nil
}

func LogoutHandler(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(v, cfgPath)
	if err != nil {
		return err
	}
	if cfg.Username == "" {
		return errors.New("not logged in")
	}

	if err := credstore.Delete(cfg.Username); err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), ui.FormatResult(ui.ResultFormat{Name: "Removed stored password for " + cfg.Username}))
	return nil
}

func ListHandler(cmd *cobra.Command, args []string) error {
	asTable, err := cmd.Flags().GetBool("table")
	if err != nil {
		return err
	}

	c, _, err := connect(cmd)
	if err != nil {
		return err
	}

	items, err := c.ListItems(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if len(items) == 0 {
		if asTable {
			fmt.Fprintln(out, "Clipboard is empty.")
		}
		return nil
	}

	if !asTable {
		for _, item := range items {
			fmt.Fprintln(out, item)
		}
		return nil
	}

	headers := []string{"#", "Item"}
	var data [][]string
	for i, item := range items {
		data = append(data, []string{strconv.Itoa(i), utils.Truncate(item, tableItemWidth)})
	}

	return utils.RenderTable(out, headers, data)
}

func AddHandler(cmd *cobra.Command, args []string) error {
	var item string
	if len(args) > 0 {
		item = strings.Join(args, " ")
	} else {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read item from stdin: %w", err)
		}
		item = strings.TrimSuffix(strings.TrimSuffix(string(b), "\n"), "\r")
	}

	c, _, err := connect(cmd)
	if err != nil {
		return err
	}

	if err := c.AddItem(cmd.Context(), item); err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), ui.FormatResult(ui.ResultFormat{Name: "Item added"}))
	return nil
}

func PushHandler(cmd *cobra.Command, args []string) error {
	text, err := localClipboard.Read()
	if err != nil {
		return err
	}

	c, _, err := connect(cmd)
	if err != nil {
		return err
	}

	if err := c.AddItem(cmd.Context(), text); err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), ui.FormatResult(ui.ResultFormat{Name: "Pushed clipboard", Detail: fmt.Sprintf("%d characters", len([]rune(text)))}))
	return nil
}

func PullHandler(cmd *cobra.Command, args []string) error {
	index, err := cmd.Flags().GetInt("index")
	if err != nil {
		return err
	}

	c, _, err := connect(cmd)
	if err != nil {
		return err
	}

	items, err := c.ListItems(cmd.Context())
	if err != nil {
		return err
	}

	if len(items) == 0 {
		return errors.New("clipboard on the server is empty")
	}
	if index < 0 || index >= len(items) {
		return fmt.Errorf("index %d out of range, server has %d items", index, len(items))
	}

	if err := localClipboard.Write(items[index]); err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), ui.FormatResult(ui.ResultFormat{Name: fmt.Sprintf("Copied item %d to the clipboard", index)}))
	return nil
}

func StatusHandler(cmd *cobra.Command, args []string) error {
	c, cfg, err := connect(cmd)
	if err != nil {
		return err
	}

	items, err := c.ListItems(cmd.Context())
	if err != nil {
		return err
	}

	lines := []string{
		"Server:     " + c.BaseURL(),
		"User:       " + c.Username(),
		"Verify TLS: " + strconv.FormatBool(cfg.VerifyTLS),
		"Items:      " + strconv.Itoa(len(items)),
	}
	fmt.Fprint(cmd.OutOrStdout(), utils.RenderBox("pasty", lines))

	return nil
}

func bindFlag(key string, cmd *cobra.Command, name string) {
	if err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(name)); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", name, err)
	}
}

func NewCLI() *cobra.Command {
	v = config.NewViper()
	cfgPath, envPath, verbose = "", "", false

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Store credentials for a clipboard server",
		Args:  cobra.NoArgs,
		RunE:  LoginHandler,
	}

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored password",
		Args:  cobra.NoArgs,
		RunE:  LogoutHandler,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List items stored on the server",
		Args:  cobra.NoArgs,
		RunE:  ListHandler,
	}
	listCmd.Flags().BoolP("table", "t", false, "Display items as a table")

	addCmd := &cobra.Command{
		Use:   "add [item...]",
		Short: "Store an item on the server (reads stdin when no item is given)",
		RunE:  AddHandler,
	}

	pushCmd := &cobra.Command{
		Use:   "push",
		Short: "Store the local clipboard contents on the server",
		Args:  cobra.NoArgs,
		RunE:  PushHandler,
	}

	pullCmd := &cobra.Command{
		Use:   "pull",
		Short: "Copy an item from the server into the local clipboard",
		Args:  cobra.NoArgs,
		RunE:  PullHandler,
	}
	pullCmd.Flags().IntP("index", "i", 0, "Position of the item in the server list")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the configured server and item count",
		Args:  cobra.NoArgs,
		RunE:  StatusHandler,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of pasty",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pasty version %s (api v%s, commit: %s, built: %s)\n", Version, api.APIVersion, GitCommit, BuildTime)
		},
	}

	rootCmd := &cobra.Command{
		Use:               "pasty",
		Short:             "Synchronize your clipboard through a pasty server",
		PersistentPreRunE: setup,
		SilenceUsage:      true,
	}

	rootCmd.PersistentFlags().String("server", "", "Clipboard server URL")
	rootCmd.PersistentFlags().String("username", "", "Username for the clipboard server")
	rootCmd.PersistentFlags().Bool("verify-tls", false, "Verify the server's TLS certificate")
	rootCmd.PersistentFlags().Duration("timeout", config.DefaultTimeout, "Timeout for each request")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to config file (default ~/.pasty/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envPath, "env", "./.env", "Path to .env file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose output")

	bindFlag(config.KeyServer, rootCmd, "server")
	bindFlag(config.KeyUsername, rootCmd, "username")
	bindFlag(config.KeyVerifyTLS, rootCmd, "verify-tls")
	bindFlag(config.KeyTimeout, rootCmd, "timeout")

	rootCmd.AddCommand(loginCmd, logoutCmd, listCmd, addCmd, pushCmd, pullCmd, statusCmd, versionCmd)

	return rootCmd
}
