package nft

// ERC721ABI exposes the contract ABI to the external test package
var ERC721ABI = erc721ABI
