package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang/glog"

	"github.com/rockstardevs/ofxconnect"
	"github.com/rockstardevs/ofxconnect/ofxgodec"
)

func main() {
	var (
		identity ofxconnect.Identity
		days     int
		strict   bool
	)
	flag.StringVar(&identity.URL, "url", "", "institution OFX server URL")
	flag.StringVar(&identity.FID, "fid", "", "institution FID")
	flag.StringVar(&identity.Org, "org", "", "institution ORG")
	flag.StringVar(&identity.User, "user", "", "user id")
	flag.StringVar(&identity.ClientUID, "clientuid", "", "client UID, required for OFX 103 and later")
	flag.StringVar(&identity.OFXVersion, "ofxversion", ofxconnect.DefaultOFXVersion, "OFX protocol version")
	flag.IntVar(&days, "days", ofxconnect.DefaultStatementDays, "statement window in days")
	flag.BoolVar(&strict, "strict", false, "decode with ofxgo instead of the lenient SGML decoder")
	flag.Parse()
	defer glog.Flush()

	identity.Password = os.Getenv("OFX_PASSWORD")

	var opts []ofxconnect.Option
	if strict {
		opts = append(opts, ofxconnect.WithDecoder(ofxgodec.NewDecoder()))
	}
	client, err := ofxconnect.NewClient(identity, opts...)
	if err != nil {
		log.Fatalf("error creating client - %s", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	accounts, err := client.ListAccounts(ctx)
	if err != nil {
		log.Fatalf("error listing accounts - %s", err)
	}
	for _, a := range accounts {
		fmt.Printf("%-10s %-20s %s\n", a.Type, a.ID, a.Description)
	}
	if len(accounts) == 0 {
		return
	}

	first := accounts[0]
	statement, err := client.GetStatement(ctx, ofxconnect.StatementQuery{
		AccountType: ofxconnect.AccountType(first.Type),
		AccountID:   first.ID,
		BankID:      first.BankID,
		Days:        days,
	})
	if err != nil {
		log.Fatalf("error fetching statement - %s", err)
	}
	fmt.Printf("%s %s - %s\n", statement.Currency, statement.Start.Format("2006-01-02"), statement.End.Format("2006-01-02"))
	for _, t := range statement.Transactions {
		fmt.Printf("%s %-8s %12s %s\n", t.Posted, t.Type, t.Amount.StringFixed(2), t.Name)
	}
}
