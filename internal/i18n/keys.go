// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserNotFound       = "auth.user_not_found"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthVendorRequired     = "auth.vendor_required"
	KeyAuthAdminRequired      = "auth.admin_required"

	// Vendors
	KeyVendorNotFound = "vendor.not_found"
	KeyVendorApproved = "vendor.approved"

	// Products
	KeyProductNotFound = "product.not_found"
	KeyProductDeleted  = "product.deleted"

	// Inventory
	KeyInventoryNotFound  = "inventory.not_found"
	KeyInventoryDeleted   = "inventory.deleted"
	KeyInventoryDuplicate = "inventory.duplicate"
	KeyInventoryCeiling   = "inventory.price_ceiling"
	KeyInventoryUpdated   = "inventory.updated"

	// Suggestions
	KeySuggestionNotFound   = "suggestion.not_found"
	KeySuggestionNotPending = "suggestion.not_pending"
	KeySuggestionRejected   = "suggestion.rejected"
	KeySuggestionSubmitted  = "suggestion.submitted"
	KeySuggestionApproved   = "suggestion.approved"

	// Orders
	KeyOrderNotFound     = "order.not_found"
	KeyOrderStatusDenied = "order.status_denied"
	KeyOrderAssigned     = "order.assigned"
	KeyOrderAssignedTo   = "order.assigned_to"
	KeyOrderStatusSet    = "order.status_updated"

	// Support
	KeyTicketNotFound    = "ticket.not_found"
	KeyTicketReplyAdded  = "ticket.reply_added"
	KeyTicketStatusSet   = "ticket.status_updated"
	KeyTicketPrioritySet = "ticket.priority_updated"
	KeyContactCreated    = "contact.created"

	// Reviews
	KeyReviewSubmitted = "review.submitted"

	// Blog
	KeyBlogNotFound = "blog.not_found"
	KeyBlogDeleted  = "blog.deleted"

	// Validation
	KeyValidationInvalid  = "validation.invalid"
	KeyValidationRequired = "validation.required"

	// Rate limiting
	KeyRateLimitExceeded = "rate_limit.exceeded"

	// Misc
	KeyForbidden     = "error.forbidden"
	KeyInternalError = "error.internal"
	KeyAlreadySeeded = "seed.already_seeded"
	KeySeeded        = "seed.completed"
	KeyMissingFile   = "upload.missing_file"
	KeyAPIWelcome    = "api.welcome"
)
