package sync

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Source is a single JSON value addressed with gjson paths.
type Source struct {
	data gjson.Result
}

// SourceFromJSON parses json into a Source.
func SourceFromJSON(json string) Source {
	return Source{data: gjson.Parse(json)}
}

func (s Source) StringForPath(path string) (string, bool) {
	result := s.data.Get(path)
	return result.String(), result.Exists() && (result.Value() != nil)
}

func (s Source) BoolForPath(path string) (bool, bool) {
	result := s.data.Get(path)
	return result.Bool(), result.Exists() && (result.Value() != nil)
}

// FileSource reads player rows from a JSON document on disk.
// Rows are located with SourceSettings.ImportRows / UpdateRows and their
// fields mapped with SourceSettings.ImportFields / UpdateFields.
type FileSource struct {
	Settings SourceSettings
	Logger   *zap.Logger
	ReadFile func(name string) ([]byte, error)
}

// NewFileSource creates a FileSource from the run's source settings.
func NewFileSource(sc *SyncContext) *FileSource {
	return &FileSource{
		Settings: sc.Config.Source,
		Logger:   sc.Logger,
		ReadFile: os.ReadFile,
	}
}

func (f *FileSource) rows(path string) ([]gjson.Result, error) {
	if path == "" {
		return nil, errors.New("no rows path configured")
	}
	contents, err := f.ReadFile(f.Settings.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read player source %s %w", f.Settings.Path, err)
	}
	if !gjson.ValidBytes(contents) {
		return nil, fmt.Errorf("player source %s is not valid json", f.Settings.Path)
	}
	rows := gjson.GetBytes(contents, path)
	if !rows.Exists() {
		return nil, fmt.Errorf("player source %s has no rows at %q", f.Settings.Path, path)
	}
	if !rows.IsArray() {
		return nil, fmt.Errorf("player source %s rows at %q are not an array", f.Settings.Path, path)
	}
	return rows.Array(), nil
}

func (f *FileSource) mapRows(path string, mappings FieldMappings, transforms map[string]string, ctx context.Context) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := f.rows(path)
	if err != nil {
		return nil, err
	}
	result := make([]Row, 0, len(rows))
	for i, v := range rows {
		row := make(Row)
		if err := MapFields(mappings, Source{data: v}, row); err != nil {
			f.Logger.Warn("player source row has invalid fields",
				zap.String("path", f.Settings.Path),
				zap.Int("row", i),
				zap.Error(err))
		}
		if err := ApplyFieldTransforms(transforms, row, f.Logger); err != nil {
			return nil, fmt.Errorf("failed to transform row %d of %s %w", i, f.Settings.Path, err)
		}
		result = append(result, row)
	}
	return result, nil
}

// ImportPlayers maps every import row of the source document.
func (f *FileSource) ImportPlayers(ctx context.Context) ([]ImportPlayer, error) {
	rows, err := f.mapRows(f.Settings.ImportRows, f.Settings.ImportFields, f.Settings.ImportTransforms, ctx)
	if err != nil {
		return nil, err
	}
	players := make([]ImportPlayer, 0, len(rows))
	for _, row := range rows {
		players = append(players, row.AsImportPlayer())
	}
	return players, nil
}

// UpdatePlayers maps every update row of the source document.
func (f *FileSource) UpdatePlayers(ctx context.Context) ([]UpdatePlayer, error) {
	rows, err := f.mapRows(f.Settings.UpdateRows, f.Settings.UpdateFields, f.Settings.UpdateTransforms, ctx)
	if err != nil {
		return nil, err
	}
	players := make([]UpdatePlayer, 0, len(rows))
	for _, row := range rows {
		if row.Time("depositDate") == nil {
			f.Logger.Warn("update row is missing its deposit date",
				zap.String("brand", row.String("brand")),
				zap.String("user_id", row.String("userId")))
		}
		players = append(players, row.AsUpdatePlayer())
	}
	return players, nil
}
