package config

const (
	defaultVaultDir         = "~/vault"
	defaultOutputFolder     = "Books"
	defaultSortBy           = "addedAt"
	defaultDateFormat       = "YYYY-MM-DD"
	defaultTagFormat        = "dash"
	defaultParentTagName    = "books"
	defaultDefaultTagName   = "unsorted"
	defaultFilenameFormat   = "dash"
	defaultCoversFolder     = "attachments/covers"
	defaultHistoryPath      = "~/.local/share/shelfsync/history.db"
	defaultNotifyTimeout    = 10
	defaultWatchIntervalMin = 60
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultSyncMode         = string(SyncCreateOnly)
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Output: Output{
			VaultDir: defaultVaultDir,
			Folder:   defaultOutputFolder,
		},
		Sync: Sync{
			Mode:             defaultSyncMode,
			SortBy:           defaultSortBy,
			SortDesc:         true,
			WatchIntervalMin: defaultWatchIntervalMin,
		},
		Format: Format{
			DateFormat:          defaultDateFormat,
			TagFormat:           defaultTagFormat,
			UseParentTag:        true,
			ParentTagName:       defaultParentTagName,
			UseDefaultTag:       true,
			DefaultTagName:      defaultDefaultTagName,
			FilenameFormat:      defaultFilenameFormat,
			FilenameLowercase:   true,
			UseTagsAsCategory:   true,
			IncludeDescription:  true,
			CreateNotesSection:  true,
			CreateQuotesSection: true,
		},
		Covers: Covers{
			Folder: defaultCoversFolder,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
