package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"net"
	"strings"
	"sync"
	"time"
)

var (
	// ErrAlreadyRunning indicates another instance already holds the lock.
	ErrAlreadyRunning = errors.New("instance already running")
	// ErrNotRunning indicates no instance is listening for commands.
	ErrNotRunning = errors.New("instance not running")
)

const (
	replyOK       = "ok"
	replyError    = "error"
	commandWindow = 5 * time.Second
)

// CommandHandler answers a control command sent by another process.
type CommandHandler func(command string) (string, error)

// InstanceGuard holds the single-instance lock. The lock port doubles as a
// control channel for the CLI.
type InstanceGuard struct {
	listener net.Listener
	address  string
	wg       sync.WaitGroup
}

// AcquireSingleInstance attempts to bind a deterministic localhost port.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := instanceAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, ErrAlreadyRunning
	}
	return &InstanceGuard{listener: listener, address: address}, nil
}

// Serve answers commands on the lock port until Release.
func (guard *InstanceGuard) Serve(handler CommandHandler) {
	guard.wg.Add(1)
	go func() {
		defer guard.wg.Done()
		for {
			conn, err := guard.listener.Accept()
			if err != nil {
				return
			}
			handleCommand(conn, handler)
		}
	}()
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	guard.wg.Wait()
	return err
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

// SendCommand delivers command to the running instance and returns its reply.
func SendCommand(appName, command string) (string, error) {
	conn, err := net.DialTimeout("tcp", instanceAddress(appName), time.Second)
	if err != nil {
		return "", ErrNotRunning
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(commandWindow))

	if _, err := fmt.Fprintf(conn, "%s\n", command); err != nil {
		return "", fmt.Errorf("send command: %w", err)
	}

	reader := bufio.NewReader(conn)
	status, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read reply: %w", err)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read reply: %w", err)
	}

	status = strings.TrimSpace(status)
	if status == replyOK {
		return string(body), nil
	}
	if message, ok := strings.CutPrefix(status, replyError+" "); ok {
		return "", errors.New(message)
	}
	return "", fmt.Errorf("unexpected reply %q", status)
}

func handleCommand(conn net.Conn, handler CommandHandler) {
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(commandWindow))

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return
	}
	reply, err := handler(strings.TrimSpace(line))
	if err != nil {
		fmt.Fprintf(conn, "%s %s\n", replyError, strings.ReplaceAll(err.Error(), "\n", " "))
		return
	}
	fmt.Fprintf(conn, "%s\n%s", replyOK, reply)
}

func instanceAddress(appName string) string {
	return fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
