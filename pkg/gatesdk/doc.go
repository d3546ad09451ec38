// Package gatesdk is a Go client for the gatekeeper service.
//
// It covers the public registration and login endpoints, the session
// introspection endpoint, and the administrative approval endpoints. The
// types in this package double as the wire contract for the service's own
// HTTP handlers, so server and client cannot drift apart.
//
// Basic usage:
//
//	client := gatesdk.NewSDKClient("http://localhost:8080")
//
//	_, err := client.Register(ctx, gatesdk.RegisterRequest{
//		First:    "Jane",
//		Email:    "jane@example.com",
//		Password: "longpass1",
//		Role:     "buyer",
//		Agree:    true,
//	})
//
//	login, err := client.Login(ctx, "jane@example.com", "longpass1")
//	if err == nil {
//		fmt.Println("send the user to", login.Redirect)
//	}
//
// Administrative endpoints need the session token of an admin-role account:
//
//	pending, err := client.AdminListPending(ctx, adminToken)
//	err = client.AdminApprove(ctx, adminToken, pending.Profiles[0].ID)
//
// All failures surface as *APIError carrying the HTTP status and the
// service's human-readable message.
package gatesdk
