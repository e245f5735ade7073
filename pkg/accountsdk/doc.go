/*
Package accountsdk is a Go client for the accounts service.

# Usage

	client := accountsdk.NewSDKClient("http://localhost:8080")

	user, err := client.CreateUser(ctx, accountsdk.CreateUserRequest{
		Username:  "admin",
		Password:  "password123",
		FirstName: "Admin",
		LastName:  "User",
	})

	token, err := client.Login(ctx, "admin", "password123")

	name := "Administrator"
	updated, err := client.UpdateUser(ctx, user.ID, accountsdk.UpdateUserRequest{
		FirstName: &name,
	})

	err = client.DeleteUser(ctx, user.ID)

# Errors

Every non-2xx response is returned as an *APIError carrying the HTTP status,
a stable code and, for validation failures, per-field details:

	_, err := client.Login(ctx, "admin", "wrong")
	if accountsdk.IsCode(err, accountsdk.ErrorCodeAuthenticationFailed) {
		// bad credentials
	}

Unknown usernames and wrong passwords produce the same authentication_failed
error.

# Types

The request and response types in this package are also what the service
itself encodes, so the wire format is defined in one place.
*/
package accountsdk
