package web

// Client-facing messages. Clients match on some of these, keep them stable.
const (
	msgRequiredFieldsMissing = "Required fields are missing."
	msgMissingFields         = "Missing required fields."
	msgInvalidCredentials    = "Invalid email or password."
	msgLoggedIn              = "User is valid and session created."
	msgNotAuthenticated      = "Not authenticated."
	msgNotAuthorized         = "Not authorized."
	msgPasswordUpdated       = "Password updated successfully."
	msgLoggedOut             = "Logged out successfully."

	msgInvalidEmail  = "Email is invalid."
	msgInvalidToken  = "Invalid registration token."
	msgTokenConflict = "Registration token has already been used."
	msgEmailTaken    = "Email is already in use."
	msgRegistered    = "User registered successfully."
	msgInvited       = "User and registration token created."

	msgProblemCreated    = "Problem created."
	msgInvalidCategory   = "Category is invalid."
	msgProblemIDRequired = "Problem ID is required."
	msgStatusRequired    = "Status is required."
	msgInvalidStatus     = "Status is invalid."
	msgProblemNotFound   = "Problem not found."
	msgStatusUpdated     = "Problem status updated successfully."

	msgDatabaseError = "Database error."
	msgInternalError = "Internal server error."
)
