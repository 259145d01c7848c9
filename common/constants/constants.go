// Package constants centralizes the shared default values and
// sentinel bytes used across keysort, so they are defined in exactly
// one place instead of scattered as magic numbers.
package constants

// ProjectName is used for default file paths and the metrics
// namespace.
const ProjectName = "keysort"

// DefaultConfigPath is the default path to the keysort configuration
// file, used by cmd/keysortctl when --config is not given.
const DefaultConfigPath = "./configs/keysort.yaml"

// DefaultLogLevel is the default severity level for logging.
const DefaultLogLevel = "INFO"

// DefaultLogFilePath is the default path for the keysort log file. An
// empty value means console-only logging.
const DefaultLogFilePath = ""

// LogFileMaxSizeMB is the default rotation size for file-backed logs.
const LogFileMaxSizeMB = 100

// LogFileMaxBackups is the default number of rotated log files kept.
const LogFileMaxBackups = 5

// LogFileMaxAgeDays is the default retention window for rotated logs.
const LogFileMaxAgeDays = 30

// UnknownTableWarnLogThreshold is the warning count at which the
// encoder logs a reminder that a table is still unrecognized by the
// schema (see encoder.UnknownTableRegistry).
const UnknownTableWarnLogThreshold = 100

// --- OrderedBytesWriter sentinel bytes ---

// StringEscapeByte and StringEscapeSuffix implement the 0x00 -> 0x00
// 0xFF escape used by String/Bytes encoding.
const StringEscapeByte = 0x00
const StringEscapeSuffix = 0xFF

// StringTerminatorSecondByte completes the 0x00 0x01 terminator that
// ends an escaped String/Bytes encoding.
const StringTerminatorSecondByte = 0x01

// NullTagGoogleStandardSqlNull/Present are the one-byte null tags for
// GoogleStandardSql: NULL sorts before all non-null values, in either
// column direction. Unlike value bytes, the tag is not complemented
// for Descending columns - only the per-dialect null/present ordering
// among present values changes there, not the null/present boundary
// itself.
const NullTagGoogleStandardSqlNull = 0x01
const NullTagGoogleStandardSqlPresent = 0x02

// NullTagPostgreSqlPresent/Null are the one-byte null tags for
// PostgreSql: NULL sorts after all non-null values, in either column
// direction.
const NullTagPostgreSqlPresent = 0x01
const NullTagPostgreSqlNull = 0x02

// UnsetTagAscending/Descending are the one-byte tags written for a
// Write mutation's omitted key column: the direction-appropriate
// maximum, with no value bytes following. 0xFF/0x00 fall outside the
// 0x01/0x02 null-tag range so Unset is never mistaken for a null or
// present column.
const UnsetTagAscending = 0xFF
const UnsetTagDescending = 0x00

// UnknownTableGroupPrefix is the 4-byte prefix emitted in place of a
// table ordering index when the mutation's table is not in the
// schema; chosen to sort after any real 4-byte index (schema tables
// are capped well below 0xFFFFFFFF in practice).
var UnknownTableGroupPrefix = [4]byte{0xFF, 0xFF, 0xFF, 0xFF}
