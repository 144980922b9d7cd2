package constants

const (
	ROLE_ADMIN     = "ADMIN"
	ROLE_ORGANIZER = "ORGANIZER"
	ROLE_GATE      = "GATE"
)

const (
	ERROR_INTERNAL_ERROR     = "Internal server error"
	MISSING_LOGIN_INPUT      = "Username and password are required"
	INVALID_USERNAME         = "Username does not exist"
	INVALID_PASSWORD         = "Wrong password"
	ACCOUNT_NOT_ACTIVE       = "Account is disabled"
	DATA_INPUT_IS_NOT_NUMBER = "Parameter must be a number"
	EVENT_NOT_FOUND          = "Event not found"
	TICKET_NOT_FOUND         = "Ticket not found"
)
