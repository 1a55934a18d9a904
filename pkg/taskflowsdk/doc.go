// Package taskflowsdk is a Go client for the TaskFlow HTTP API.
//
// The API authenticates with an HttpOnly cookie, so a Client keeps a cookie
// jar and behaves like a browser: Login or Signup stores the session, and
// every later call sends it.
//
//	c, _ := taskflowsdk.NewClient("http://localhost:8080")
//	res, err := c.Login(ctx, "ann@example.com", "correct horse")
//	if res.RequiresTwoFactor {
//		err = c.VerifyTwoFactor(ctx, code, false)
//	}
//	projects, err := c.Projects(ctx, res.User.BusinessID)
package taskflowsdk
