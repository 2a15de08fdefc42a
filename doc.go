/*
Package ofxconnect is an OFX direct connect client.

It signs on to a financial institution's OFX server and issues one of three requests:
account information, bank statement or credit card statement. Every request is a fresh
document with its own file UID, transaction UID and client cookie. Responses are handed
to a Decoder, the ofx package by default.

	client, err := ofxconnect.NewClient(ofxconnect.Identity{
		FID:      "5959",
		Org:      "HAN",
		URL:      "https://ofx.example-bank.test/ofx",
		User:     "user",
		Password: "secret",
	})
	if err != nil {
		return err
	}
	accounts, err := client.ListAccounts(ctx)

*/
package ofxconnect
