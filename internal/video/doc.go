// Package video holds the identifier and metadata types shared by the upstream
// client, the embed resolver, and the HTTP layer.
package video
