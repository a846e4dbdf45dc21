package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikeBiancalana/dateprompt/internal/config"
	"github.com/MikeBiancalana/dateprompt/internal/logger"
	"github.com/MikeBiancalana/dateprompt/internal/sequence"
	"github.com/MikeBiancalana/dateprompt/internal/storage"
)

// Collaborators shared by the commands. Tests swap them for fakes.
var (
	newAsker = func(cmd *cobra.Command, showHelp bool) sequence.Asker {
		return &sequence.Terminal{ShowHelp: showHelp}
	}
	openStore = openDefaultStore
	clock     = time.Now
)

var version = "dev"

// SetVersion sets the version string reported by --version
func SetVersion(v string) {
	version = v
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "dateprompt",
		Short: "Dateprompt - interactive date prompts for the terminal",
		Long: `Ask for dates in place: the date is shown in your locale's layout,
left/right pick a field and up/down adjust it. Questionnaires mix date,
text, confirm and select questions and keep a history of answers.`,
		Version:      version,
		SilenceUsage: true,
	}

	root.AddCommand(newAskCommand())
	root.AddCommand(newRunCommand())
	root.AddCommand(newHistoryCommand())
	root.AddCommand(newLocalesCommand())

	return root
}

// Execute runs the root command
func Execute() error {
	defer logger.Close()
	return NewRootCommand().Execute()
}

// initTUILogging moves logging to a file before an interactive prompt takes
// over the terminal.
func initTUILogging() error {
	logDir, err := config.LogDir()
	if err != nil {
		return fmt.Errorf("failed to get log directory: %w", err)
	}

	return logger.InitializeWithConfig(logger.Config{
		Level:   logger.GetLevel().String(),
		Format:  logger.GetFormat(),
		File:    filepath.Join(logDir, "dateprompt.log"),
		TUIMode: true,
	})
}

func openDefaultStore() (*storage.Repository, func() error, error) {
	dbPath, err := config.DatabasePath()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get database path: %w", err)
	}

	db, err := storage.NewDatabase(dbPath)
	if err != nil {
		return nil, nil, err
	}

	return storage.NewRepository(db), db.Close, nil
}

// saveResult records the answers of one run in the history database
func saveResult(source string, res *sequence.Result) (*storage.Session, error) {
	repo, closeStore, err := openStore()
	if err != nil {
		return nil, err
	}
	defer closeStore()

	session := storage.NewSession(source)
	for _, name := range res.Names {
		session.Add(name, res.Answers[name])
	}

	if err := repo.SaveSession(session); err != nil {
		return nil, err
	}

	logger.Info("saved answers", "session_id", session.ID, "source", source, "count", len(session.Answers))
	return session, nil
}
