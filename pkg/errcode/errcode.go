package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Sources errors
	SourcesConfigError
	SourceNotFoundError

	// Fetch errors
	FetchRequestError
	FetchStatusError
	FetchSaveError
	FetchRemoveError

	// Store errors
	StoreOpenError
	StoreSchemaError
	StoreQueryError
	StoreScanError

	// Report errors
	ReportRangeError
	ReportExportError
	ReportCacheError
	ReportReconcileError

	// Server errors
	ServerStartError
	ServerShutdownError

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBEmptyDatabaseError
	DBNotConnectedError
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError

	// Publish errors
	PublishFactsError
	PublishRecordError
	PublishViewError
)
