// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries. It
// matches the login token lifetime so a cached token stays valid until the
// JWT itself expires, unless logout removes it first.
const AuthCacheTTL = 7 * 24 * time.Hour

// ConversationKeyPrefix is the prefix for WhatsApp conversation state keys.
const ConversationKeyPrefix = "conv:"

// ConversationTTL is the idle expiry for an abandoned booking conversation.
const ConversationTTL = 30 * time.Minute
