package redis

import (
	"fmt"

	"github.com/dicelobby/accounts/internal/model"
)

// Key prefix for all account-service data
const keyPrefix = "accounts"

// Key generation functions for each entity type

// accountKey returns the Redis key for an Account document
func accountKey(id model.AccountID) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> account_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// emailIndexKey returns the Redis key for the email -> account_id index
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, email)
}

// phoneKey returns the Redis key for a Phone document
func phoneKey(id model.PhoneID) string {
	return fmt.Sprintf("%s:phone:%s", keyPrefix, id)
}

// phonesForAccountIndexKey returns the Redis key for the SET of phone ids owned by an account
func phonesForAccountIndexKey(accountID model.AccountID) string {
	return fmt.Sprintf("%s:idx:phones_for_account:%s", keyPrefix, accountID)
}

// sessionKey returns the Redis key for a Session document
func sessionKey(token string) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, token)
}

// groupKey returns the Redis key for a Group document
func groupKey(id model.GroupID) string {
	return fmt.Sprintf("%s:group:%s", keyPrefix, id)
}

// defaultGroupsIndexKey returns the Redis key for the SET of default group ids
func defaultGroupsIndexKey() string {
	return fmt.Sprintf("%s:idx:default_groups", keyPrefix)
}

// gatewayKey returns the Redis key for a Gateway document, indexed by token
func gatewayKey(token string) string {
	return fmt.Sprintf("%s:gateway:%s", keyPrefix, token)
}

// applicationKey returns the Redis key for an Application document, indexed by key
func applicationKey(key string) string {
	return fmt.Sprintf("%s:application:%s", keyPrefix, key)
}
