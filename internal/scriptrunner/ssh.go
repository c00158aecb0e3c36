package scriptrunner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"time"

	"golang.org/x/crypto/ssh"

	"task-assistant/config"
	"task-assistant/internal/contract"
	"task-assistant/internal/model"
	"task-assistant/pkg/logger"
)

// Scripts may print a JSON document on their last line to control the
// reported state and message; plain output is passed through as-is.
type scriptOutput struct {
	State  string `json:"state"`
	Result string `json:"result"`
}

const maxOutputSize = 100 * 1024

var interpreters = map[string]string{
	"bash":       "bash -s",
	"sh":         "sh -s",
	"python":     "python3 -",
	"javascript": "node -",
}

// SSHRunner executes scripts on the remote server linked to each script.
type SSHRunner struct {
	cfg *config.Config
	log *logger.Logger
}

func NewSSHRunner(cfg *config.Config, log *logger.Logger) *SSHRunner {
	return &SSHRunner{cfg: cfg, log: log}
}

func (r *SSHRunner) Execute(ctx context.Context, script *model.Script) (*contract.ExecutionResult, error) {
	startedAt := time.Now().UTC()

	server := script.SSHServer
	if server == nil {
		return failed(startedAt, "no ssh server linked to script"), nil
	}
	if !server.IsActive {
		return failed(startedAt, fmt.Sprintf("ssh server %q is not active", server.Name)), nil
	}

	interp, ok := interpreters[script.Language]
	if !ok {
		return failed(startedAt, fmt.Sprintf("unsupported script language %q", script.Language)), nil
	}

	output, err := r.runRemote(ctx, server, interp, script.Code)
	endedAt := time.Now().UTC()
	if err != nil {
		r.log.ErrorContext(ctx, "Script execution failed",
			logger.ErrorField(err),
			logger.IntField("script_id", int(script.ID)),
			logger.StringField("server", server.Name),
		)
		return &contract.ExecutionResult{
			Success:   false,
			Output:    output + "\n" + err.Error(),
			StartedAt: startedAt,
			EndedAt:   endedAt,
		}, nil
	}

	result := &contract.ExecutionResult{
		Success:   true,
		Output:    output,
		StartedAt: startedAt,
		EndedAt:   endedAt,
	}

	// Honor the {"state","result"} output convention when present.
	var parsed scriptOutput
	if jsonErr := json.Unmarshal([]byte(output), &parsed); jsonErr == nil && parsed.State != "" {
		result.Success = parsed.State == model.ExecutionStateSuccess
		if parsed.Result != "" {
			result.Output = parsed.Result
		}
	}

	return result, nil
}

func (r *SSHRunner) runRemote(ctx context.Context, server *model.SSHServer, interp, code string) (string, error) {
	auth, err := authMethod(server)
	if err != nil {
		return "", err
	}

	clientCfg := &ssh.ClientConfig{
		User:            server.Username,
		Auth:            []ssh.AuthMethod{auth},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         r.cfg.Scheduler.ScriptTimeout,
	}

	addr := net.JoinHostPort(server.Host, strconv.Itoa(server.Port))
	client, err := ssh.Dial("tcp", addr, clientCfg)
	if err != nil {
		return "", fmt.Errorf("ssh dial %s: %w", addr, err)
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return "", fmt.Errorf("ssh session: %w", err)
	}
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdin = bytes.NewBufferString(code)
	session.Stdout = &stdout
	session.Stderr = &stderr

	done := make(chan error, 1)
	go func() {
		done <- session.Run(interp)
	}()

	select {
	case <-ctx.Done():
		_ = session.Signal(ssh.SIGKILL)
		return truncate(stdout.String()), fmt.Errorf("script timed out: %w", ctx.Err())
	case err = <-done:
	}

	out := truncate(stdout.String())
	if err != nil {
		return out, fmt.Errorf("script exited with error: %w; stderr: %s", err, truncate(stderr.String()))
	}
	return out, nil
}

func authMethod(server *model.SSHServer) (ssh.AuthMethod, error) {
	if server.AuthType == "key" && server.PrivateKey != "" {
		signer, err := ssh.ParsePrivateKey([]byte(server.PrivateKey))
		if err != nil {
			return nil, fmt.Errorf("parse private key: %w", err)
		}
		return ssh.PublicKeys(signer), nil
	}
	if server.Password != "" {
		return ssh.Password(server.Password), nil
	}
	return nil, fmt.Errorf("ssh server %q has no usable credentials", server.Name)
}

func failed(startedAt time.Time, msg string) *contract.ExecutionResult {
	return &contract.ExecutionResult{
		Success:   false,
		Output:    msg,
		StartedAt: startedAt,
		EndedAt:   time.Now().UTC(),
	}
}

func truncate(s string) string {
	if len(s) > maxOutputSize {
		return s[:maxOutputSize]
	}
	return s
}
