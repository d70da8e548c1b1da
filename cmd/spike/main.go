package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/aretw0/vellum"
)

// Configuração do Spike
const (
	WorkerCount = 100
)

func main() {
	log.Println("⚡ Iniciando Spike: Vellum Concurrency Test")

	// 1. Setup do Diretório Temporário
	tmpDir, err := os.MkdirTemp("", "vellum-spike-*")
	if err != nil {
		log.Fatalf("Erro ao criar temp dir: %v", err)
	}
	// Limpeza no final (comentado para inspeção se falhar, descomentar para produção)
	// defer os.RemoveAll(tmpDir)

	log.Printf("📂 Diretório de trabalho: %s", tmpDir)

	b := vellum.NewBuilder()
	b.Int("worker").Required()
	b.AutoNow("updated")
	schema := b.Schema()

	// 2. Inicializar o store versionado (git init acontece aqui)
	st, err := vellum.NewStore(tmpDir, schema, vellum.WithVersioning(true))
	if err != nil {
		log.Fatalf("Erro ao abrir o store: %v", err)
	}

	// Configurar user dummy para o commit funcionar
	runGit(tmpDir, "config", "user.email", "spike@vellum.dev")
	runGit(tmpDir, "config", "user.name", "Vellum Spike")

	start := time.Now()

	// 3. Execução Concorrente
	// O Git não suporta múltiplos processos mexendo no index/lock ao mesmo
	// tempo; o lock interno do store deve serializar os commits.
	var wg sync.WaitGroup
	wg.Add(WorkerCount)

	for i := 0; i < WorkerCount; i++ {
		go func(id int) {
			defer wg.Done()

			doc, err := schema.New(nil, vellum.Values{"worker": id})
			if err != nil {
				log.Printf("[Erro] Construção %d: %v", id, err)
				return
			}
			doc.Write(fmt.Sprintf("Documento de teste do worker %d.\n", id))

			if err := st.Save(fmt.Sprintf("notes/worker-%d", id), doc); err != nil {
				log.Printf("[Erro] Save %d: %v", id, err)
				return
			}

			// log.Printf("✅ Commit %d ok", id) // Comentado para reduzir ruído
		}(i)
	}

	wg.Wait()
	duration := time.Since(start)

	// 4. Validação Final
	log.Println("🏁 Todas as goroutines finalizaram.")
	log.Printf("⏱️  Tempo Total: %v", duration)
	log.Printf("⚡ Throughput: %.2f commits/seg", float64(WorkerCount)/duration.Seconds())

	// Verificar git status
	status := getGitOutput(tmpDir, "status", "--porcelain")
	if status != "" {
		log.Fatalf("❌ FALHA: Git status não está limpo:\n%s", status)
	} else {
		log.Println("✅ SUCESSO: Git status limpo (clean slate).")
	}

	// Contar commits
	count := getGitOutput(tmpDir, "rev-list", "--count", "HEAD")
	log.Printf("📊 Total de Commits no Histórico: %s", count)
}

func runGit(dir string, args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git %v failed: %v\nOutput: %s", args, err, string(out))
	}
	return nil
}

func getGitOutput(dir string, args ...string) string {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		log.Printf("Erro ao ler status: %v", err)
		return ""
	}
	return string(out)
}
