package cmctypes

// UndoKind enumerates the reversible operation kinds. The set is closed:
// the undo service switches exhaustively over it and re-pushes records
// whose kind it does not recognize.
type UndoKind string

const (
	UndoMove         UndoKind = "move"
	UndoRename       UndoKind = "rename"
	UndoDelete       UndoKind = "delete"
	UndoCopy         UndoKind = "copy"
	UndoWrite        UndoKind = "write"
	UndoCreateFile   UndoKind = "create_file"
	UndoCreateFolder UndoKind = "create_folder"
	UndoMacroAdd     UndoKind = "macro_add"
	UndoMacroDelete  UndoKind = "macro_delete"
	UndoMacroClear   UndoKind = "macro_clear"
	UndoAliasAdd     UndoKind = "alias_add"
	UndoAliasDelete  UndoKind = "alias_delete"
	UndoConfigChange UndoKind = "config_change"
)

// UndoRecord carries exactly the data needed to invert one operation.
// Which fields are meaningful depends on Kind; unused fields stay zero.
// Records are owned by the undo stack: popped and consumed on undo,
// re-pushed unchanged if the inverse fails.
type UndoRecord struct {
	Kind UndoKind

	// File operations.
	Src      string // move/rename: current location (post-operation)
	Dst      string // move/rename: original location to restore to
	Original string // delete: path the item lived at
	Trash    string // delete: holding-area location
	Dest     string // copy: the created copy
	Path     string // write/create: target path
	IsDir    bool   // delete/copy: directory flag

	// Write inversion.
	OldContent string // prior file content, valid when Existed
	Existed    bool   // whether the file existed before the write

	// Create-file inversion: the content written at creation, so undo
	// can refuse if the file was modified afterwards.
	CreatedContent string

	// Macro and alias mutations.
	Name     string
	OldBody  string   // previous alias body or macro body, valid when HadOld
	OldSteps []string // previous macro steps, valid when HadOld
	HadOld   bool     // false when the entry did not exist before
	Snapshot map[string][]string // macro clear: full prior store

	// Config mutation: prior settings snapshot.
	OldConfig map[string]any
}
