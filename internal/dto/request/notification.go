package request

// UpdateNotificationsRequest marks notifications read: either an explicit ID
// list or everything unread. An absent list with markAllAsRead false is
// rejected; an empty list is a no-op.
type UpdateNotificationsRequest struct {
	NotificationIDs []string `json:"notificationIds,omitempty"`
	MarkAllAsRead   bool     `json:"markAllAsRead,omitempty"`
}

type DeleteNotificationsRequest struct {
	NotificationIDs []string `json:"notificationIds,omitempty"`
	DeleteAll       bool     `json:"deleteAll,omitempty"`
}
