package domain

const (
	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"

	// SECONDS_PER_DAY is the accrual period of a realm's daily rate
	SECONDS_PER_DAY = 24 * 60 * 60

	// MAX_BATCH_SIZE bounds the number of items accepted by a single batch call
	MAX_BATCH_SIZE = 500
)
