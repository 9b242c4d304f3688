package repository

// Имена коллекций хранилища. Полный ключ записи — "<коллекция>_<ID владельца>".
const (
	CollectionPurchasedCourses        = "purchasedCourses"
	CollectionFollowedCommunities     = "followedCommunities"
	CollectionScheduledSessions       = "scheduledSessions"
	CollectionTeacherSessions         = "teacherSessions"
	CollectionTeacherStats            = "stTeacherStats"
	CollectionRescheduleNotifications = "rescheduleNotifications"
)

// Глобальные ключи кэша поискового индекса (без владельца)
const (
	KeyIndexedCourses     = "indexedCourses"
	KeyIndexedInstructors = "indexedInstructors"
)

// Key строит ключ записи коллекции для владельца
func Key(collection, ownerID string) string {
	return collection + "_" + ownerID
}

// OwnerFromKey выделяет ID владельца из ключа коллекции
func OwnerFromKey(collection, key string) string {
	prefix := collection + "_"
	if len(key) <= len(prefix) {
		return ""
	}
	return key[len(prefix):]
}
