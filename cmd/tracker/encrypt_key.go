package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ndewijer/Crypto-Portfolio-Tracker/internal/config"
)

type encryptKeyCmd struct{}

func (*encryptKeyCmd) Name() string     { return "encrypt-key" }
func (*encryptKeyCmd) Synopsis() string { return "encrypt a CoinGecko API key for the environment" }
func (*encryptKeyCmd) Usage() string {
	return `tracker encrypt-key <api-key>

  Prints COINGECKO_API_KEY_ENCRYPTED for the key, encrypted with SECRET_KEY.
  A new SECRET_KEY is generated and printed when none is set.
`
}

func (*encryptKeyCmd) SetFlags(*flag.FlagSet) {}

func (*encryptKeyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		generated, err := config.GenerateSecretKey()
		if err != nil {
			return fail("%v", err)
		}
		secret = generated
		fmt.Printf("SECRET_KEY=%s\n", secret)
	}

	token, err := config.EncryptSecret(f.Arg(0), secret)
	if err != nil {
		return fail("%v", err)
	}
	fmt.Printf("COINGECKO_API_KEY_ENCRYPTED=%s\n", token)
	return subcommands.ExitSuccess
}
