package constants

// Addressing keywords used in front of entity sets.
const (
	CmdUID = "UID"
	CmdRID = "RID"
)

// Cache policy keys.
const (
	KeyCachePolicy  = "CACHEPOLICY"
	KeyInherit      = "INHERIT"
	KeyInterval     = "INTERVAL"
	KeyCacheTimeout = "CACHETIMEOUT"
	KeySyncOnDemand = "SYNCONDEMAND"
	KeyLocalParts   = "LOCALPARTS"
)

// Collection record keys.
const (
	KeyName           = "NAME"
	KeyRemoteID       = "REMOTEID"
	KeyRemoteRevision = "REMOTEREVISION"
	KeyResource       = "RESOURCE"
	KeyMimeType       = "MIMETYPE"
	KeyVirtual        = "VIRTUAL"
	KeyMessages       = "MESSAGES"
	KeyUnseen         = "UNSEEN"
	KeySize           = "SIZE"
	KeyAncestors      = "ANCESTORS"
	KeyAccessRights   = "AccessRights"
)

// Item fetch keys.
const (
	KeyUID          = "UID"
	KeyRevision     = "REV"
	KeyCollectionID = "COLLECTIONID"
	KeyFlags        = "FLAGS"
	KeyDateTime     = "DATETIME"
	KeyFetch        = "FETCH"
)

// Item fetch scope parameters.
const (
	ParamFullPayload          = "FULLPAYLOAD"
	ParamAllAttributes        = "ALLATTR"
	ParamCacheOnly            = "CACHEONLY"
	ParamCheckCachedPartsOnly = "CHECKCACHEDPARTSONLY"
	ParamIgnoreErrors         = "IGNOREERRORS"
	ParamExternalPayload      = "EXTERNALPAYLOAD"
	ParamAncestors            = "ANCESTORS"
	ParamChangedSince         = "CHANGEDSINCE"
	// ExternalPayloadMarker precedes a file name instead of inline payload data.
	ExternalPayloadMarker = "[FILE]"
)

// Part namespace prefixes.
const (
	PrefixPayload   = "PLD"
	PrefixAttribute = "ATR"
)

// Date-time layouts of DATETIME values. Parsing accepts a space-padded or
// zero-padded day; formatting always writes two digits.
const (
	DateTimeLayout = "_2-Jan-2006 15:04:05 -0700"
	DateTimeFormat = "02-Jan-2006 15:04:05 -0700"
)
