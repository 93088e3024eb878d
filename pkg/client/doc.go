// Package client is the facade of the signed-request API client.
//
// Every call runs the same pipeline: the caller's parameters are
// copied, api_key and request_timestamp are injected, the tree is
// canonicalized into a deterministic query string, an HMAC-SHA256
// signature is appended, the request is sent, and the raw outcome is
// normalized into a core.Envelope. Callers branch on the envelope,
// never on raised errors.
//
// Example usage:
//
//	cfg := core.NewConfig("key", "secret", "https://api.example.com")
//	c, err := client.New(cfg)
//	if err != nil {
//		return err
//	}
//	defer c.Close()
//
//	env := c.Get(ctx, "/users", core.Params{"id": 5}).Wait()
//	if env.IsSuccess() {
//		fmt.Println(env.Payload)
//	}
package client
