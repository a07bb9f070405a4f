package metadata

/*
batchStats
  - Represents a terminal, derived summary of a completed prefetch batch
  - Contains only aggregate counts and durations
  - Is computed by the resolver after the last day of the batch
  - Is recorded exactly once per batch
*/
type batchStats struct {
	totalDays  int
	fromCache  int
	fromRemote int
	failed     int
	durationMs int64
}

/*
	ErrorCause is a closed, canonical classification used exclusively for
	observability (logging, reporting).

	Rules:
	 - ErrorCause MUST NOT influence control flow.
	 - ErrorCause values MUST have stable, package-agnostic semantics.
	 - Packages MAY map their local errors to ErrorCause,
	   but MUST NOT invent new meanings.

If a failure does not clearly match a defined cause, CauseUnknown MUST be used.
*/
type ErrorCause int

/*
Canonical ErrorCause Table

# CauseUnknown

Meaning:
  - The failure does not map cleanly to any known category.

# CauseNetworkFailure

Meaning:
  - Failure caused by network transport or remote availability.

Examples:
  - TCP timeouts
  - DNS resolution failures
  - HTTP 5xx

# CauseRemoteNotFound

Meaning:
  - The remote endpoint answered that the requested input does not exist.

Examples:
  - HTTP 404 for a day that has not been released yet

# CausePolicyDisallow

Meaning:
  - The remote refused the request by policy.

Examples:
  - HTTP 400 / 401 / 403 from a missing or expired session cookie
  - HTTP 429

# CauseContentInvalid

Meaning:
  - Content was fetched but cannot be used.

Examples:
  - Empty body on a successful response
  - Unreadable cookie file

# CauseStorageFailure

Meaning:
  - Failure while opening, reading or writing the local store.

# CauseInvariantViolation

Meaning:
  - A system-level invariant was violated.

Examples:
  - A second write for an identifier that is already cached
  - An identifier that cannot name a puzzle
*/
const (
	CauseUnknown ErrorCause = iota
	CauseNetworkFailure
	CauseRemoteNotFound
	CausePolicyDisallow
	CauseContentInvalid
	CauseStorageFailure
	CauseInvariantViolation
)

func (c ErrorCause) String() string {
	switch c {
	case CauseNetworkFailure:
		return "network_failure"
	case CauseRemoteNotFound:
		return "remote_not_found"
	case CausePolicyDisallow:
		return "policy_disallow"
	case CauseContentInvalid:
		return "content_invalid"
	case CauseStorageFailure:
		return "storage_failure"
	case CauseInvariantViolation:
		return "invariant_violation"
	default:
		return "unknown"
	}
}

type ArtifactKind string

const (
	ArtifactCacheEntry ArtifactKind = "cache_entry"
	ArtifactStore      ArtifactKind = "store"
)

type Attribute struct {
	Key   AttributeKey
	Value string
}

func NewAttr(key AttributeKey, val string) Attribute {
	return Attribute{
		Key:   key,
		Value: val,
	}
}

type AttributeKey string

const (
	AttrTime       AttributeKey = "time"
	AttrURL        AttributeKey = "url"
	AttrHost       AttributeKey = "host"
	AttrPath       AttributeKey = "path"
	AttrYear       AttributeKey = "year"
	AttrDay        AttributeKey = "day"
	AttrField      AttributeKey = "field"
	AttrHTTPStatus AttributeKey = "http_status"
	AttrDigest     AttributeKey = "digest"
	AttrSize       AttributeKey = "size"
	AttrWritePath  AttributeKey = "write_path"
)
