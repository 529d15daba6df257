// Package api is a client for the pasty clipboard synchronization service
// (API version 2.1).
//
//	creds := api.NewCredentials("alice", "secret")
//	c, err := api.NewClient(ctx, "https://pasty.example.com/", creds, true)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := c.AddItem(ctx, "hello"); err != nil {
//		log.Fatal(err)
//	}
//
//	items, err := c.ListItems(ctx)
//
// Failures reported by the server arrive as *RequestError; a failed
// construction probe as *ServerUnreachableError.
package api
