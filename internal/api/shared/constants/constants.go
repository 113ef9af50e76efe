package constants

import "github.com/feral-file/ff-infusion/internal/domain"

const (
	MAX_BATCH_ITEMS_PER_REQUEST = domain.MAX_BATCH_SIZE
	MAX_ADDRESSES_PER_DELTA     = 100
	MAX_REALM_NAME_LENGTH       = 256
	MAX_DESCRIPTION_LENGTH      = 4096
	MAX_COMMENT_LENGTH          = 1024

	// CALLER_ADDRESS_HEADER carries the caller of an API key authenticated request
	CALLER_ADDRESS_HEADER = "X-Caller-Address"
	// REQUEST_ID_HEADER carries the request id in and out
	REQUEST_ID_HEADER = "X-Request-ID"
)
