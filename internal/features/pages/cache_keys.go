package pages

import "github.com/google/uuid"

// Cached page reads are keyed per user, since two users can see the same
// page at different access levels. Eviction for a whole page or workspace
// works by prefix.

func pageCacheKey(pageID, userID uuid.UUID) string {
	return pageCachePrefix(pageID) + "user:" + userID.String()
}

func pageCachePrefix(pageID uuid.UUID) string {
	return "page:" + pageID.String() + ":"
}

func userPagesCacheKey(userID uuid.UUID) string {
	return "user_pages:" + userID.String()
}

func workspacePagesCacheKey(workspaceID, userID uuid.UUID) string {
	return workspacePagesCachePrefix(workspaceID) + "user:" + userID.String()
}

func workspacePagesCachePrefix(workspaceID uuid.UUID) string {
	return "workspace_pages:" + workspaceID.String() + ":"
}
