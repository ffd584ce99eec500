package directurl

import (
	"github.com/bianoble/direct-url/internal/dist"
	"github.com/bianoble/direct-url/internal/engine"
	"github.com/bianoble/direct-url/internal/record"
)

// Type aliases re-export the record model and engine results as the public
// API. Users import "github.com/bianoble/direct-url/pkg/directurl" and use
// directurl.VCSRecord, directurl.Summary, etc.

type Record = record.Record
type Kind = record.Kind
type VCSInfo = record.VCSInfo
type VCSRecord = record.VCSRecord
type HashPair = record.HashPair
type ArchiveInfo = record.ArchiveInfo
type ArchiveRecord = record.ArchiveRecord
type DirectoryInfo = record.DirectoryInfo
type DirectoryRecord = record.DirectoryRecord

type FieldError = record.FieldError
type SyntaxError = record.SyntaxError
type UnsupportedTypeError = record.UnsupportedTypeError
type NotFoundError = dist.NotFoundError

type Distribution = dist.Distribution
type PathDistribution = dist.PathDistribution

type Summary = engine.Summary
type ListOptions = engine.ListOptions
type ListResult = engine.ListResult
type WriteResult = engine.WriteResult
type DistError = engine.DistError

const (
	KindUnknown   = record.KindUnknown
	KindVCS       = record.KindVCS
	KindArchive   = record.KindArchive
	KindDirectory = record.KindDirectory
)

// MetadataName is the file name of the descriptor inside a dist-info directory.
const MetadataName = dist.MetadataName

var (
	ErrMissingField    = record.ErrMissingField
	ErrInvalidField    = record.ErrInvalidField
	ErrUnsupportedType = record.ErrUnsupportedType
	ErrNotFound        = dist.ErrNotFound
)
