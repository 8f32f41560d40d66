package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxFolderNameLength = 255

	// MaxNoteTitleLength is the maximum length for note titles.
	// Same as folder names for consistency.
	MaxNoteTitleLength = 255

	// MaxFolderDepth bounds the breadcrumb ancestor walk. The parent
	// chain is structurally acyclic (folders only ever attach as new
	// leaves, and moves reject descendants), so hitting this limit
	// indicates a corrupted tree rather than a deep one.
	MaxFolderDepth = 64

	// MaxUploadBytes caps PDF/PPT upload size (20 MB).
	MaxUploadBytes = 20 << 20

	// BcryptCost is the work factor for password hashing.
	BcryptCost = 10
)
