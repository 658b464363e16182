package domain

// KeyPrefix namespaces every key the service writes to the database.
const KeyPrefix = "lostmatch:"

// MaxDescriptionBytes caps a single lost or found description accepted over HTTP.
const MaxDescriptionBytes = 16 << 10
