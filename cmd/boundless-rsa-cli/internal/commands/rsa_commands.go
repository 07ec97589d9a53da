package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MGTheTrain/boundless-rsa/internal/app"
	"github.com/MGTheTrain/boundless-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/boundless-rsa/internal/domain/keys"
	"github.com/MGTheTrain/boundless-rsa/internal/domain/rsa"
	"github.com/MGTheTrain/boundless-rsa/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/boundless-rsa/internal/pkg/config"
	"github.com/MGTheTrain/boundless-rsa/internal/pkg/logger"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// RSACommandHandler encapsulates logic for handling RSA operations via CLI.
type RSACommandHandler struct {
	rsaProcessor cryptoalg.RSAProcessor
	logger       logger.Logger
}

// NewRSACommandHandler initializes a new RSACommandHandler with logging and an RSA processor.
func NewRSACommandHandler() (*RSACommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	rsaProcessor, err := cryptography.NewRSAProcessor(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create RSA processor: %w", err)
	}

	return &RSACommandHandler{
		rsaProcessor: rsaProcessor,
		logger:       loggerInstance,
	}, nil
}

// GenerateKeysCmd generates a key pair and writes both halves to the key directory
// as <id>-private-key.pem and <id>-public-key.pem.
func (commandHandler *RSACommandHandler) GenerateKeysCmd(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	keyDir, err := flags.GetString("key-dir")
	if err != nil {
		return fmt.Errorf("invalid key-dir flag: %w", err)
	}
	exponent, err := flags.GetString("exponent")
	if err != nil {
		return fmt.Errorf("invalid exponent flag: %w", err)
	}
	minDigits, err := flags.GetInt("min-digits")
	if err != nil {
		return fmt.Errorf("invalid min-digits flag: %w", err)
	}
	maxDigits, err := flags.GetInt("max-digits")
	if err != nil {
		return fmt.Errorf("invalid max-digits flag: %w", err)
	}
	workers, err := flags.GetInt("workers")
	if err != nil {
		return fmt.Errorf("invalid workers flag: %w", err)
	}
	timeout, err := flags.GetDuration("timeout")
	if err != nil {
		return fmt.Errorf("invalid timeout flag: %w", err)
	}

	settings := config.DefaultRSASettings()
	settings.Workers = workers
	opts, err := app.NewGenerateOptions(settings, &keys.GenerateParams{
		PublicExponent: exponent,
		MinPrimeDigits: minDigits,
		MaxPrimeDigits: maxDigits,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	pair, err := commandHandler.rsaProcessor.GenerateKeys(ctx, opts)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(keyDir, 0700); err != nil {
		return fmt.Errorf("failed to create key directory: %w", err)
	}

	uniqueID := uuid.NewString()
	privateKeyFilePath := filepath.Join(keyDir, uniqueID+"-private-key.pem")
	if err := commandHandler.rsaProcessor.SavePrivateKeyToFile(pair.Private, privateKeyFilePath); err != nil {
		return err
	}

	publicKeyFilePath := filepath.Join(keyDir, uniqueID+"-public-key.pem")
	if err := commandHandler.rsaProcessor.SavePublicKeyToFile(pair.Public, publicKeyFilePath); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), publicKeyFilePath)
	fmt.Fprintln(cmd.OutOrStdout(), privateKeyFilePath)
	return nil
}

// EncryptCmd encrypts a file with a public key
func (commandHandler *RSACommandHandler) EncryptCmd(cmd *cobra.Command, _ []string) error {
	inputFile, outputFile, err := fileFlags(cmd)
	if err != nil {
		return err
	}
	publicKeyPath, err := cmd.Flags().GetString("public-key")
	if err != nil {
		return fmt.Errorf("invalid public-key flag: %w", err)
	}

	publicKey, err := commandHandler.rsaProcessor.ReadPublicKey(publicKeyPath)
	if err != nil {
		return err
	}

	plainText, err := os.ReadFile(filepath.Clean(inputFile))
	if err != nil {
		return err
	}

	encryptedData, err := commandHandler.rsaProcessor.Encrypt(plainText, publicKey)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputFile, encryptedData, 0600); err != nil {
		return err
	}

	commandHandler.logger.Info("Encrypted data path ", outputFile)
	return nil
}

// DecryptCmd decrypts a file written by EncryptCmd with the matching private key
func (commandHandler *RSACommandHandler) DecryptCmd(cmd *cobra.Command, _ []string) error {
	inputFile, outputFile, err := fileFlags(cmd)
	if err != nil {
		return err
	}
	privateKeyPath, err := cmd.Flags().GetString("private-key")
	if err != nil {
		return fmt.Errorf("invalid private-key flag: %w", err)
	}

	privateKey, err := commandHandler.rsaProcessor.ReadPrivateKey(privateKeyPath)
	if err != nil {
		return err
	}

	encryptedData, err := os.ReadFile(filepath.Clean(inputFile))
	if err != nil {
		return err
	}

	decryptedData, err := commandHandler.rsaProcessor.Decrypt(encryptedData, privateKey)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputFile, decryptedData, 0600); err != nil {
		return err
	}

	commandHandler.logger.Info("Decrypted data path ", outputFile)
	return nil
}

// InspectKeyCmd prints the sizes of a key file's components. Private key
// factors are never printed.
func (commandHandler *RSACommandHandler) InspectKeyCmd(cmd *cobra.Command, _ []string) error {
	keyFile, err := cmd.Flags().GetString("key-file")
	if err != nil {
		return fmt.Errorf("invalid key-file flag: %w", err)
	}

	out := cmd.OutOrStdout()
	if publicKey, err := commandHandler.rsaProcessor.ReadPublicKey(keyFile); err == nil {
		fmt.Fprintf(out, "type: %s\n", keys.KeyTypePublic)
		printModulus(cmd, publicKey.N().DecimalDigits(), publicKey.Size())
		fmt.Fprintf(out, "public exponent: %s\n", publicKey.E())
		return nil
	}

	privateKey, err := commandHandler.rsaProcessor.ReadPrivateKey(keyFile)
	if err != nil {
		return fmt.Errorf("%s holds neither a public nor a private key: %w", keyFile, err)
	}
	fmt.Fprintf(out, "type: %s\n", keys.KeyTypePrivate)
	printModulus(cmd, privateKey.N().DecimalDigits(), privateKey.Size())
	fmt.Fprintf(out, "prime digits: %d, %d\n", privateKey.P().DecimalDigits(), privateKey.Q().DecimalDigits())
	return nil
}

func printModulus(cmd *cobra.Command, digits, size int) {
	fmt.Fprintf(cmd.OutOrStdout(), "modulus digits: %d\n", digits)
	fmt.Fprintf(cmd.OutOrStdout(), "block size: %d bytes\n", size)
}

func fileFlags(cmd *cobra.Command) (string, string, error) {
	inputFile, err := cmd.Flags().GetString("input-file")
	if err != nil {
		return "", "", fmt.Errorf("invalid input-file flag: %w", err)
	}
	outputFile, err := cmd.Flags().GetString("output-file")
	if err != nil {
		return "", "", fmt.Errorf("invalid output-file flag: %w", err)
	}
	return inputFile, outputFile, nil
}

// InitRSACommands registers RSA-related commands
func InitRSACommands(rootCmd *cobra.Command) error {
	handler, err := NewRSACommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create RSA command handler %w", err)
	}

	var generateKeysCmd = &cobra.Command{
		Use:   "generate-keys",
		Short: "Generate a textbook RSA key pair",
		RunE:  handler.GenerateKeysCmd,
	}
	generateKeysCmd.Flags().StringP("key-dir", "", "", "Directory to store the keys")
	generateKeysCmd.Flags().StringP("exponent", "", fmt.Sprint(rsa.DefaultPublicExponent), "Public exponent, odd and at least 3")
	generateKeysCmd.Flags().IntP("min-digits", "", rsa.DefaultMinPrimeDigits, "Minimum decimal digits of each prime")
	generateKeysCmd.Flags().IntP("max-digits", "", rsa.DefaultMaxPrimeDigits, "Maximum decimal digits of each prime")
	generateKeysCmd.Flags().IntP("workers", "", 0, "Concurrent prime searches")
	generateKeysCmd.Flags().DurationP("timeout", "", 2*time.Minute, "Give up key generation after this long")
	_ = generateKeysCmd.MarkFlagRequired("key-dir")
	rootCmd.AddCommand(generateKeysCmd)

	var encryptFileCmd = &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt a file with a public key",
		RunE:  handler.EncryptCmd,
	}
	encryptFileCmd.Flags().StringP("input-file", "", "", "Path to input file which needs to be encrypted")
	encryptFileCmd.Flags().StringP("output-file", "", "", "Path to encrypted output file")
	encryptFileCmd.Flags().StringP("public-key", "", "", "Path to public key")
	for _, name := range []string{"input-file", "output-file", "public-key"} {
		_ = encryptFileCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(encryptFileCmd)

	var decryptFileCmd = &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt a file with a private key",
		RunE:  handler.DecryptCmd,
	}
	decryptFileCmd.Flags().StringP("input-file", "", "", "Path to encrypted file")
	decryptFileCmd.Flags().StringP("output-file", "", "", "Path to decrypted output file")
	decryptFileCmd.Flags().StringP("private-key", "", "", "Path to private key")
	for _, name := range []string{"input-file", "output-file", "private-key"} {
		_ = decryptFileCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(decryptFileCmd)

	var inspectKeyCmd = &cobra.Command{
		Use:   "inspect-key",
		Short: "Print the modulus size and exponent of a key file",
		RunE:  handler.InspectKeyCmd,
	}
	inspectKeyCmd.Flags().StringP("key-file", "", "", "Path to a public or private key")
	_ = inspectKeyCmd.MarkFlagRequired("key-file")
	rootCmd.AddCommand(inspectKeyCmd)

	return nil
}
